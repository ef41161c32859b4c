package catalog

// Namespaces used by the built-in bundle.
const (
	NamespaceErrors = "errors"
	NamespaceSheet  = "sheet"
)

var builtinMessages = Entries{
	BaseLocale: {
		NamespaceErrors: {
			"UNKNOWN":                  "Something went wrong.",
			"CHARACTER_EMPTY_NAME":     "Character name is required.",
			"CHARACTER_EMPTY_ID":       "Character id is required.",
			"ROLL_DIE_OUT_OF_RANGE":    "Die value {{.Value}} at position {{.Index}} is outside 1-6.",
			"ROLL_INVALID_BURN":        "Die {{.Index}} cannot be burned.",
			"ROLL_BURN_ONE_FORBIDDEN":  "Ones cannot be burned for {{.Keyword}} rolls.",
			"ROLL_INVALID_MODE":        "Keep mode {{.Mode}} is not supported.",
			"ROLL_KARMA_UNAVAILABLE":   "Karma cannot be spent on this result.",
			"ROLL_CONFIRM_UNAVAILABLE": "There is no critical result to confirm.",
			"RESOURCE_NEGATIVE_VALUE":  "Resource {{.ResourceID}} has a negative value.",
			"RESOURCE_EMPTY":           "{{.Title}} has nothing left to spend.",
			"RESOURCE_EMPTY_TITLE":     "Resource title is required.",
			"REPLENISH_UNAVAILABLE":    "{{.Title}} cannot be replenished right now.",
			"REPLENISH_UNAFFORDABLE":   "Replenishing {{.Title}} costs {{.Cost}}, only {{.Available}} available.",
			"NOT_FOUND":                "The requested record was not found.",
			"DICE_MISSING":             "At least one die must be rolled.",
			"DICE_INVALID_SPEC":        "A pool must have between 1 and {{.Max}} dice.",
			"SEED_OUT_OF_RANGE":        "The roll seed is out of range.",
		},
		NamespaceSheet: {
			"sheet.roll":              "Roll",
			"sheet.burn":              "Burn",
			"sheet.karma":             "Karma",
			"sheet.confirm":           "Confirm",
			"sheet.replenish.reset":   "Reset",
			"sheet.replenish.restore": "Restore",
			"sheet.result.none":       "No result",
			"sheet.mode.kh":           "Keep highest",
			"sheet.mode.kl":           "Keep lowest",
		},
	},
	"pt-BR": {
		NamespaceErrors: {
			"UNKNOWN":                  "Algo deu errado.",
			"CHARACTER_EMPTY_NAME":     "O nome do personagem é obrigatório.",
			"CHARACTER_EMPTY_ID":       "O id do personagem é obrigatório.",
			"ROLL_DIE_OUT_OF_RANGE":    "O dado {{.Index}} tem valor {{.Value}}, fora de 1-6.",
			"ROLL_INVALID_BURN":        "O dado {{.Index}} não pode ser queimado.",
			"ROLL_BURN_ONE_FORBIDDEN":  "Uns não podem ser queimados em rolagens {{.Keyword}}.",
			"ROLL_INVALID_MODE":        "O modo {{.Mode}} não é suportado.",
			"ROLL_KARMA_UNAVAILABLE":   "Carma não pode ser gasto neste resultado.",
			"ROLL_CONFIRM_UNAVAILABLE": "Não há crítico para confirmar.",
			"RESOURCE_NEGATIVE_VALUE":  "O recurso {{.ResourceID}} tem valor negativo.",
			"RESOURCE_EMPTY":           "{{.Title}} não tem mais nada para gastar.",
			"RESOURCE_EMPTY_TITLE":     "O título do recurso é obrigatório.",
			"REPLENISH_UNAVAILABLE":    "{{.Title}} não pode ser reabastecido agora.",
			"REPLENISH_UNAFFORDABLE":   "Reabastecer {{.Title}} custa {{.Cost}}, apenas {{.Available}} disponível.",
			"NOT_FOUND":                "O registro solicitado não foi encontrado.",
			"DICE_MISSING":             "Pelo menos um dado deve ser rolado.",
			"DICE_INVALID_SPEC":        "Uma parada deve ter entre 1 e {{.Max}} dados.",
			"SEED_OUT_OF_RANGE":        "A semente da rolagem está fora do intervalo.",
		},
		NamespaceSheet: {
			"sheet.roll":              "Rolar",
			"sheet.burn":              "Queimar",
			"sheet.karma":             "Carma",
			"sheet.confirm":           "Confirmar",
			"sheet.replenish.reset":   "Zerar",
			"sheet.replenish.restore": "Restaurar",
			"sheet.result.none":       "Sem resultado",
			"sheet.mode.kh":           "Manter maior",
			"sheet.mode.kl":           "Manter menor",
		},
	},
}
