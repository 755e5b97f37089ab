package membership

// Decision — итоговое решение о физическом допуске.
type Decision struct {
	Admit          bool   `json:"admit"`
	Status         Status `json:"status"`
	DisplayMessage string `json:"display_message"`
}

// Decide превращает результат классификации в решение о допуске.
// Льготные статусы (EXPIRING_SOON, EXPIRING_TODAY) допускаются только при
// включённом AdmitOnGrace: это политика физического доступа и она задаётся
// конфигурацией, а не кодом.
//
// Перечисление статусов исчерпывающее. Неизвестный статус означает, что
// таблицу не обновили вместе с ядром, и трактуется как отказ: новый статус
// не может молча превратиться в допуск.
func Decide(eval Evaluation, opts Options) Decision {
	admit := false
	switch eval.Status {
	case StatusCurrent:
		admit = true
	case StatusExpiringSoon, StatusExpiringToday:
		admit = opts.AdmitOnGrace
	case StatusPaymentExpired,
		StatusNoCompletedPayment,
		StatusNoMembershipPlan,
		StatusUserInactive,
		StatusUserNotFound:
		admit = false
	}
	return Decision{
		Admit:          admit,
		Status:         eval.Status,
		DisplayMessage: eval.Message,
	}
}

// NotFoundDecision возвращает отказ для неизвестного идентификатора.
// Evaluate при этом не вызывается.
func NotFoundDecision() Decision {
	return Decision{
		Admit:          false,
		Status:         StatusUserNotFound,
		DisplayMessage: "no user matches the given identifier",
	}
}
