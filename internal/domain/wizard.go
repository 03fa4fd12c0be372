package domain

import "time"

// WizardStep шаг мастера оформления заказа
type WizardStep int

const (
	StepContactInfo WizardStep = 1
	StepAddress     WizardStep = 2
	StepSchedule    WizardStep = 3
	StepConfirm     WizardStep = 4
)

// IsValid возвращает true для существующего шага
func (s WizardStep) IsValid() bool {
	return s >= StepContactInfo && s <= StepConfirm
}

func (s WizardStep) String() string {
	switch s {
	case StepContactInfo:
		return "contact_info"
	case StepAddress:
		return "address"
	case StepSchedule:
		return "schedule"
	case StepConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// FieldErrors ошибки валидации, ключ "section.field"
// Пустая мапа означает отсутствие ошибок
// Дополнительный не-полевой ключ SubmitErrorKey используется для ошибки отправки
type FieldErrors map[string]string

// FieldKey строит ключ ошибки для поля секции
// Для количества услуг секция сама является ключом
func FieldKey(section, field string) string {
	if section == SectionQuantity {
		return SectionQuantity
	}
	return section + "." + field
}

// Clone возвращает копию мапы ошибок
func (e FieldErrors) Clone() FieldErrors {
	clone := make(FieldErrors, len(e))
	for k, v := range e {
		clone[k] = v
	}
	return clone
}

// Wizard машина состояний мастера оформления заказа
//
// Владеет текущим шагом, черновиком и ошибками валидации. Переход вперёд
// возможен только после успешной валидации текущего шага; переход назад
// разрешён всегда и валидацию не выполняет. CurrentStep изменяется
// исключительно через Advance/Retreat - внешнего сеттера нет,
// поэтому пропуск шагов вперёд невозможен.
type Wizard struct {
	CurrentStep        WizardStep
	Draft              *BookingDraft
	Errors             FieldErrors
	SubmissionInFlight bool
}

// NewWizard создает мастер на первом шаге с черновиком,
// заполненным из профиля клиента
func NewWizard(seed CustomerSeed) *Wizard {
	return &Wizard{
		CurrentStep: StepContactInfo,
		Draft:       NewDraft(seed),
		Errors:      FieldErrors{},
	}
}

// UpdateField обновляет одно поле черновика (copy-on-write)
// Существующая ошибка именно этого поля очищается оптимистически,
// без повторной валидации
func (w *Wizard) UpdateField(section, field, value string) error {
	draft, err := w.Draft.WithField(section, field, value)
	if err != nil {
		return err
	}

	w.Draft = draft
	delete(w.Errors, FieldKey(section, field))
	return nil
}

// Advance валидирует текущий шаг и при успехе переходит к следующему
// При ошибках валидации шаг не меняется, а ошибки сохраняются в Errors.
// Результат валидации записывается в Errors до смены шага, поэтому
// переход никогда не наблюдается раньше своего валидационного результата.
// На последнем шаге успешный Advance не меняет шаг (no-op)
func (w *Wizard) Advance(now time.Time) bool {
	errs := ValidateStep(w.Draft, w.CurrentStep, now)
	w.Errors = errs

	if len(errs) > 0 {
		return false
	}

	if w.CurrentStep < StepConfirm {
		w.CurrentStep++
	}
	return true
}

// Retreat возвращает мастер на предыдущий шаг
// Ниже первого шага не опускается; ошибки и черновик не изменяются
func (w *Wizard) Retreat() {
	if w.CurrentStep > StepContactInfo {
		w.CurrentStep--
	}
}
