package i18n

var messages = map[string]map[string]string{
	"fr": {
		"app.title":       "Missions",
		"required":        "Requis",
		"invalid_date":    "Date invalide",
		"invalid_range":   "La date de fin précède la date de début",
		"too_long":        "Trop long",
		"duration.day":    "%d jour",
		"duration.days":   "%d jours",
		"nav.dashboard":   "Tableau de bord",
		"nav.mandats":     "Mandats",
		"nav.ordres":      "Ordres de mission",
		"nav.logout":      "Déconnexion",
		"nav.login":       "Connexion",
		"nav.new_mandat":  "Nouveau mandat",
		"nav.new_ordre":   "Nouvel ordre de mission",
		"login.title":     "Connexion",
		"login.username":  "Identifiant",
		"login.password":  "Mot de passe",
		"login.submit":    "Se connecter",
		"login.failed":    "Identifiants incorrects",
		"login.welcome":   "Bienvenue",
		"logout.done":     "Vous êtes déconnecté",
		"session.expired": "Votre session a expiré, veuillez vous reconnecter",

		"status.en_attente_justificatif": "En attente de justificatif",
		"status.en_attente_confirmation": "En attente de confirmation",
		"status.en_attente_execution":    "En attente d'exécution",
		"status.en_cours":                "En cours",
		"status.acheve":                  "Achevé",
		"status.unknown":                 "Statut inconnu",

		"page.mandat.en-attente-confirmation": "Mandats en attente de confirmation",
		"page.mandat.en-attente-execution":    "Mandats en attente d'exécution",
		"page.mandat.en-cours":                "Mandats en cours",
		"page.mandat.acheves":                 "Mandats achevés",
		"page.mandat.mes-mandats":             "Mes mandats",
		"page.ordre.en-attente-justificatif":  "Ordres en attente de justificatif",
		"page.ordre.en-attente-confirmation":  "Ordres en attente de confirmation",
		"page.ordre.en-attente-execution":     "Ordres en attente d'exécution",
		"page.ordre.en-cours":                 "Ordres en cours",
		"page.ordre.acheves":                  "Ordres achevés",
		"page.ordre.mes-ordres":               "Mes ordres de mission",

		"col.reference": "Référence",
		"col.objectif":  "Objectif",
		"col.statut":    "Statut",
		"col.dates":     "Période",
		"col.duree":     "Durée",
		"col.montant":   "Montant",
		"col.createur":  "Créé par",
		"col.actions":   "Actions",
		"col.details":   "Détails",

		"field.objectif":          "Objectif",
		"field.controle":          "Mission de contrôle",
		"field.date_debut":        "Date de début",
		"field.date_fin":          "Date de fin",
		"field.date_creation":     "Créé le",
		"field.date_confirmation": "Confirmé le",
		"field.confirmed_by":      "Confirmé par",
		"field.users":             "Personnel",
		"field.villes":            "Villes",
		"field.ressources":        "Ressources",
		"field.mandat":            "Mandat",
		"field.beneficiaire":      "Bénéficiaire",
		"field.justificatifs":     "Justificatifs",
		"field.motif":             "Motif du rejet",
		"field.counts":            "%d agent(s), %d ville(s), %d ressource(s)",
		"yes":                     "Oui",
		"no":                      "Non",

		"filter.search":     "Rechercher",
		"filter.date_debut": "Du",
		"filter.date_fin":   "Au",
		"filter.statut":     "Statut",
		"filter.all":        "Tous",
		"filter.createur":   "Créateur",
		"filter.apply":      "Filtrer",
		"filter.reset":      "Réinitialiser",

		"list.empty":          "Aucun enregistrement à afficher",
		"list.empty_filtered": "Aucun enregistrement ne correspond aux filtres",
		"list.load_error":     "Impossible de charger la liste",
		"list.retry":          "Réessayer",
		"list.count":          "%d enregistrement(s)",

		"action.confirm":        "Confirmer",
		"action.reject":         "Rejeter",
		"action.execute":        "Exécuter",
		"action.complete":       "Achever",
		"action.downloadPdf":    "Télécharger le PDF",
		"action.addAttachments": "Ajouter des justificatifs",
		"action.edit":           "Modifier",
		"action.view":           "Voir",
		"action.pending":        "Action en cours pour cet enregistrement",
		"action.denied":         "Action non autorisée pour cet enregistrement",
		"action.done":           "Action déjà effectuée, actualisez la liste",

		"flash.confirm.ok":        "Confirmé avec succès",
		"flash.reject.ok":         "Rejeté avec succès",
		"flash.execute.ok":        "Mis en exécution avec succès",
		"flash.complete.ok":       "Achevé avec succès",
		"flash.addAttachments.ok": "Justificatifs envoyés avec succès",
		"flash.edit.ok":           "Enregistré avec succès",
		"flash.create.ok":         "Créé avec succès",
		"flash.action.failed":     "L'opération a échoué",
		"flash.network":           "Le serveur est injoignable, veuillez réessayer",

		"attach.title":        "Justificatifs à envoyer",
		"attach.files":        "Fichiers",
		"attach.empty":        "Aucun fichier sélectionné",
		"attach.add":          "Ajouter",
		"attach.remove":       "Retirer",
		"attach.submit":       "Envoyer les justificatifs",
		"attach.nothing":      "Aucun fichier en attente d'envoi",
		"attach.too_large":    "Fichier trop volumineux",
		"attach.added":        "Fichier(s) ajouté(s)",
		"attach.removed":      "Fichier retiré",
		"attach.pending_size": "%d fichier(s), %s",

		"form.save":                "Enregistrer",
		"form.cancel":              "Annuler",
		"form.errors":              "Veuillez corriger les erreurs suivantes",
		"validation.quota":         "Quota dépassé : quota actuel %s jour(s), après la mission %s jour(s)",
		"validation.quota_plain":   "Quota de jours dépassé",
		"validation.quota_current": "Quota dépassé : quota actuel %s jour(s)",
		"validation.quota_after":   "Quota dépassé : %s jour(s) après la mission",
		"validation.overlap":       "Chevauchement avec une autre mission se terminant le %s",
		"validation.overlap_bare":  "Chevauchement avec une autre mission",

		"dashboard.title":    "Tableau de bord",
		"dashboard.greeting": "Bonjour %s",
		"dashboard.open":     "Ouvrir",
		"dashboard.error":    "indisponible",

		"detail.title":   "Détail",
		"detail.back":    "Retour à la liste",
		"denied.title":   "Accès refusé",
		"denied.message": "Vous n'avez pas les droits nécessaires pour consulter cette page.",
		"notfound.title": "Page introuvable",
		"notfound.message": "La page ou l'enregistrement demandé n'existe pas.",
		"error.generic":  "Une erreur est survenue",
	},
	"en": {
		"app.title":       "Missions",
		"required":        "Required",
		"invalid_date":    "Invalid date",
		"invalid_range":   "End date is before start date",
		"too_long":        "Too long",
		"duration.day":    "%d day",
		"duration.days":   "%d days",
		"nav.dashboard":   "Dashboard",
		"nav.mandats":     "Mandates",
		"nav.ordres":      "Mission orders",
		"nav.logout":      "Log out",
		"nav.login":       "Log in",
		"nav.new_mandat":  "New mandate",
		"nav.new_ordre":   "New mission order",
		"login.title":     "Log in",
		"login.username":  "Username",
		"login.password":  "Password",
		"login.submit":    "Log in",
		"login.failed":    "Invalid credentials",
		"login.welcome":   "Welcome",
		"logout.done":     "You are logged out",
		"session.expired": "Your session has expired, please log in again",

		"status.en_attente_justificatif": "Awaiting receipts",
		"status.en_attente_confirmation": "Awaiting confirmation",
		"status.en_attente_execution":    "Awaiting execution",
		"status.en_cours":                "In progress",
		"status.acheve":                  "Completed",
		"status.unknown":                 "Unknown status",

		"page.mandat.en-attente-confirmation": "Mandates awaiting confirmation",
		"page.mandat.en-attente-execution":    "Mandates awaiting execution",
		"page.mandat.en-cours":                "Mandates in progress",
		"page.mandat.acheves":                 "Completed mandates",
		"page.mandat.mes-mandats":             "My mandates",
		"page.ordre.en-attente-justificatif":  "Orders awaiting receipts",
		"page.ordre.en-attente-confirmation":  "Orders awaiting confirmation",
		"page.ordre.en-attente-execution":     "Orders awaiting execution",
		"page.ordre.en-cours":                 "Orders in progress",
		"page.ordre.acheves":                  "Completed orders",
		"page.ordre.mes-ordres":               "My mission orders",

		"col.reference": "Reference",
		"col.objectif":  "Objective",
		"col.statut":    "Status",
		"col.dates":     "Period",
		"col.duree":     "Duration",
		"col.montant":   "Amount",
		"col.createur":  "Created by",
		"col.actions":   "Actions",
		"col.details":   "Details",

		"field.objectif":          "Objective",
		"field.controle":          "Control mission",
		"field.date_debut":        "Start date",
		"field.date_fin":          "End date",
		"field.date_creation":     "Created on",
		"field.date_confirmation": "Confirmed on",
		"field.confirmed_by":      "Confirmed by",
		"field.users":             "Staff",
		"field.villes":            "Cities",
		"field.ressources":        "Resources",
		"field.mandat":            "Mandate",
		"field.beneficiaire":      "Beneficiary",
		"field.justificatifs":     "Receipts",
		"field.motif":             "Rejection reason",
		"field.counts":            "%d staff, %d city(ies), %d resource(s)",
		"yes":                     "Yes",
		"no":                      "No",

		"filter.search":     "Search",
		"filter.date_debut": "From",
		"filter.date_fin":   "To",
		"filter.statut":     "Status",
		"filter.all":        "All",
		"filter.createur":   "Creator",
		"filter.apply":      "Filter",
		"filter.reset":      "Reset",

		"list.empty":          "Nothing to display",
		"list.empty_filtered": "No record matches the filters",
		"list.load_error":     "The list could not be loaded",
		"list.retry":          "Retry",
		"list.count":          "%d record(s)",

		"action.confirm":        "Confirm",
		"action.reject":         "Reject",
		"action.execute":        "Execute",
		"action.complete":       "Complete",
		"action.downloadPdf":    "Download PDF",
		"action.addAttachments": "Add receipts",
		"action.edit":           "Edit",
		"action.view":           "View",
		"action.pending":        "An action is already running for this record",
		"action.denied":         "Action not allowed for this record",
		"action.done":           "Action already done, refresh the list",

		"flash.confirm.ok":        "Confirmed",
		"flash.reject.ok":         "Rejected",
		"flash.execute.ok":        "Execution started",
		"flash.complete.ok":       "Completed",
		"flash.addAttachments.ok": "Receipts uploaded",
		"flash.edit.ok":           "Saved",
		"flash.create.ok":         "Created",
		"flash.action.failed":     "The operation failed",
		"flash.network":           "The server cannot be reached, please retry",

		"attach.title":        "Receipts to upload",
		"attach.files":        "Files",
		"attach.empty":        "No file selected",
		"attach.add":          "Add",
		"attach.remove":       "Remove",
		"attach.submit":       "Upload receipts",
		"attach.nothing":      "No pending file to upload",
		"attach.too_large":    "File too large",
		"attach.added":        "File(s) added",
		"attach.removed":      "File removed",
		"attach.pending_size": "%d file(s), %s",

		"form.save":                "Save",
		"form.cancel":              "Cancel",
		"form.errors":              "Please fix the following errors",
		"validation.quota":         "Quota exceeded: current quota %s day(s), after the mission %s day(s)",
		"validation.quota_plain":   "Day quota exceeded",
		"validation.quota_current": "Quota exceeded: current quota %s day(s)",
		"validation.quota_after":   "Quota exceeded: %s day(s) after the mission",
		"validation.overlap":       "Overlaps another mission ending on %s",
		"validation.overlap_bare":  "Overlaps another mission",

		"dashboard.title":    "Dashboard",
		"dashboard.greeting": "Hello %s",
		"dashboard.open":     "Open",
		"dashboard.error":    "unavailable",

		"detail.title":   "Details",
		"detail.back":    "Back to the list",
		"denied.title":   "Access denied",
		"denied.message": "You are not allowed to view this page.",
		"notfound.title": "Page not found",
		"notfound.message": "The requested page or record does not exist.",
		"error.generic":  "Something went wrong",
	},
}
