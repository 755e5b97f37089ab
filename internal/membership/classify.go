package membership

import (
	"time"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// ClassifiedMember — строка отчёта: срез данных плюс результат классификации.
type ClassifiedMember struct {
	Snapshot   models.MemberSnapshot `json:"snapshot"`
	Evaluation Evaluation            `json:"evaluation"`
}

// Report — результат групповой классификации. Buckets считаются по всем
// членам до фильтрации, Rows содержат только запрошенное подмножество
// статусов в порядке входа.
type Report struct {
	Buckets map[Status]int     `json:"buckets"`
	Rows    []ClassifiedMember `json:"rows"`
}

// ClassifyOptions — настройки групповой классификации.
type ClassifyOptions struct {
	Options
	// Model — явно объявленная модель вычисления даты окончания.
	Model ExpiryModel
	// Statuses — подмножество статусов для строк отчёта; пустое значит все.
	Statuses []Status
}

// Classify прогоняет Evaluate по срезу членов клуба ровно один раз на каждого
// и раскладывает результаты по корзинам. Порядок строк повторяет порядок
// входа, сортировка и пагинация — забота вызывающего. Ошибка целостности
// данных любого члена прерывает отчёт целиком.
func Classify(snaps []models.MemberSnapshot, now time.Time, opts ClassifyOptions) (Report, error) {
	report := Report{
		Buckets: make(map[Status]int, len(snaps)),
	}

	wanted := make(map[Status]struct{}, len(opts.Statuses))
	for _, s := range opts.Statuses {
		wanted[s] = struct{}{}
	}

	for _, snap := range snaps {
		in := EvalInput{
			UserActive: snap.User.Active,
			Membership: snap.Membership,
			Plan:       snap.Plan,
			Payment:    snap.LatestPayment,
			Policy:     PolicyFor(opts.Model, snap.Membership, snap.Plan, snap.LatestPayment),
		}
		eval, err := Evaluate(in, now, opts.Options)
		if err != nil {
			return Report{}, err
		}

		report.Buckets[eval.Status]++

		if len(wanted) > 0 {
			if _, ok := wanted[eval.Status]; !ok {
				continue
			}
		}
		report.Rows = append(report.Rows, ClassifiedMember{
			Snapshot:   snap,
			Evaluation: eval,
		})
	}
	return report, nil
}
