package domain

// Message keys. Each key is the English rendering; translations live in the l10n catalogs.
const (
	MsgSourceMissing          = "the source page does not exist"
	MsgSourceRedirect         = "the source page is a redirect"
	MsgSourceTooLong          = "the source page is too long (more than %d KB)"
	MsgTargetMissing          = "the target page does not exist"
	MsgBotSectionNotFound     = "bot section not found on %s"
	MsgRecentTemplate         = "the recently modified template %s is included in %s"
	MsgStylesheetUnprotected  = "the stylesheet %s is not protected"
	MsgStylesheetInsufficient = "the stylesheet %s has a protection level below « extended semi-protection »"
	MsgStylesheetExpiring     = "the protection of the stylesheet %s expires in less than %d days"
	MsgStylesheetUnverifiable = "cannot verify the protection of %s"

	MsgIndexMissing         = "the page does not exist"
	MsgIndexTemplateMissing = "the template {{m|%s}} was not found on the page"
	MsgNoValueForDay        = "no page is set for %s"
	MsgNotMainNamespace     = "%s is not a page of the main namespace"

	MsgCopyFailed       = "Error while copying %s to %s: %s"
	MsgSelectionFailed  = "Cannot select the source from %s: %s"
	MsgNoReportedErrors = "<!-- No reported errors -->"
	MsgUpdateSummary    = "Update from %s"
	MsgReportSummary    = "Error report"
)
