package l10n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"

	"go.trai.ch/mirror/internal/core/domain"
)

var french = map[string]string{
	domain.MsgSourceMissing:          "la page source n'existe pas",
	domain.MsgSourceRedirect:         "la page source est une redirection",
	domain.MsgSourceTooLong:          "la page source est trop longue (plus de %d Ko)",
	domain.MsgTargetMissing:          "la page cible n'existe pas",
	domain.MsgBotSectionNotFound:     "section de bot non trouvée sur %s",
	domain.MsgRecentTemplate:         "le modèle récemment modifié %s est inclus dans %s",
	domain.MsgStylesheetUnprotected:  "la feuille de style %s n'est pas protégée",
	domain.MsgStylesheetInsufficient: "la feuille de style %s a un niveau de protection inférieur à « semi-protection étendue »",
	domain.MsgStylesheetExpiring:     "la protection de la feuille de style %s expire dans moins de %d jours",
	domain.MsgStylesheetUnverifiable: "impossible de vérifier la protection de %s",

	domain.MsgIndexMissing:         "la page n'existe pas",
	domain.MsgIndexTemplateMissing: "le modèle {{m|%s}} n'a pas été trouvé dans la page",
	domain.MsgNoValueForDay:        "aucune page n'est renseignée pour le %s",
	domain.MsgNotMainNamespace:     "%s n'est pas une page de l'espace principal",

	domain.MsgCopyFailed:       "Erreur lors de la copie de %s vers %s : %s",
	domain.MsgSelectionFailed:  "Impossible de lire la source du jour à partir de %s : %s",
	domain.MsgNoReportedErrors: "<!-- Aucune erreur -->",
	domain.MsgUpdateSummary:    "Mise à jour à partir de %s",
	domain.MsgReportSummary:    "Rapport d'erreur",
}

// newCatalog registers the translations. English keys render as themselves.
func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range french {
		if err := b.SetString(language.French, key, msg); err != nil {
			return nil, err
		}
	}
	return b, nil
}
