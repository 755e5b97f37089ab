package models

// MemberSnapshot — неизменяемый срез данных члена клуба на момент запроса:
// пользователь, его текущий абонемент (самый поздний по дате начала),
// план этого абонемента и последний завершённый платёж.
//
// Срез собирается хранилищем одним запросом и передаётся в ядро по значению,
// поэтому одно вычисление статуса не может увидеть "рваное" чтение.
type MemberSnapshot struct {
	User          User        // Пользователь
	Membership    *Membership // nil, если абонементов нет
	Plan          *Plan       // nil, если абонементов нет
	LatestPayment *Payment    // Последний COMPLETED платёж, nil если не было
}
