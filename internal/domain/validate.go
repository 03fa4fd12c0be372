package domain

import (
	"regexp"
	"strings"
	"time"
)

// Сообщения ошибок валидации полей
const (
	msgNameRequired     = "укажите имя"
	msgEmailRequired    = "укажите email"
	msgEmailInvalid     = "некорректный email"
	msgPhoneRequired    = "укажите номер телефона"
	msgStreetRequired   = "укажите улицу и дом"
	msgCityRequired     = "укажите город"
	msgStateRequired    = "укажите регион"
	msgZipCodeRequired  = "укажите почтовый индекс"
	msgDateRequired     = "выберите дату визита"
	msgDateInvalid      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast       = "дата визита не может быть в прошлом"
	msgTimeSlotRequired = "выберите временной слот"
	msgTimeSlotInvalid  = "некорректный временной слот"
)

// emailRegexp стандартная форма local@domain
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateStep проверяет поля черновика, относящиеся к указанному шагу
//
// Возвращает мапу ошибок с ключами "section.field"; пустая мапа означает,
// что шаг валиден. Функция чистая: не имеет побочных эффектов и не изменяет
// черновик. Текущее время передаётся параметром для проверки даты визита.
//
// Шаг подтверждения полевых проверок не имеет - ошибки отправки
// репортятся отдельным ключом SubmitErrorKey. Шаг вне диапазона сюда
// попасть не может: CurrentStep управляется только Advance/Retreat.
func ValidateStep(d *BookingDraft, step WizardStep, now time.Time) FieldErrors {
	errs := FieldErrors{}

	switch step {
	case StepContactInfo:
		validateContactInfo(d, errs)
	case StepAddress:
		validateAddress(d, errs)
	case StepSchedule:
		validateSchedule(d, errs, now)
	case StepConfirm:
		// Полевых проверок нет
	}

	return errs
}

// ValidatePriorSteps повторно проверяет все шаги, предшествующие подтверждению
// Используется перед отправкой заказа: кэшированной валидности
// произвольной давности доверять нельзя
func ValidatePriorSteps(d *BookingDraft, now time.Time) FieldErrors {
	errs := FieldErrors{}
	validateContactInfo(d, errs)
	validateAddress(d, errs)
	validateSchedule(d, errs, now)
	return errs
}

func validateContactInfo(d *BookingDraft, errs FieldErrors) {
	if strings.TrimSpace(d.CustomerInfo.Name) == "" {
		errs[FieldKey(SectionCustomerInfo, "name")] = msgNameRequired
	}

	email := strings.TrimSpace(d.CustomerInfo.Email)
	switch {
	case email == "":
		errs[FieldKey(SectionCustomerInfo, "email")] = msgEmailRequired
	case !emailRegexp.MatchString(email):
		errs[FieldKey(SectionCustomerInfo, "email")] = msgEmailInvalid
	}

	// Формат телефона не ограничивается, достаточно непустого значения
	if strings.TrimSpace(d.CustomerInfo.Phone) == "" {
		errs[FieldKey(SectionCustomerInfo, "phone")] = msgPhoneRequired
	}
}

func validateAddress(d *BookingDraft, errs FieldErrors) {
	if strings.TrimSpace(d.Address.Street) == "" {
		errs[FieldKey(SectionAddress, "street")] = msgStreetRequired
	}
	if strings.TrimSpace(d.Address.City) == "" {
		errs[FieldKey(SectionAddress, "city")] = msgCityRequired
	}
	if strings.TrimSpace(d.Address.State) == "" {
		errs[FieldKey(SectionAddress, "state")] = msgStateRequired
	}
	if strings.TrimSpace(d.Address.ZipCode) == "" {
		errs[FieldKey(SectionAddress, "zipCode")] = msgZipCodeRequired
	}
	// landmark и instructions опциональны
}

func validateSchedule(d *BookingDraft, errs FieldErrors, now time.Time) {
	dateKey := FieldKey(SectionScheduling, "preferredDate")

	switch {
	case d.Scheduling.PreferredDate == "":
		errs[dateKey] = msgDateRequired
	default:
		date, err := time.Parse(DateFormat, d.Scheduling.PreferredDate)
		if err != nil {
			errs[dateKey] = msgDateInvalid
		} else if isDateInPast(date, now) {
			errs[dateKey] = msgDateInPast
		}
	}

	slotKey := FieldKey(SectionScheduling, "preferredTimeSlot")
	switch {
	case d.Scheduling.PreferredTimeSlot == "":
		errs[slotKey] = msgTimeSlotRequired
	case !d.Scheduling.PreferredTimeSlot.IsValid():
		errs[slotKey] = msgTimeSlotInvalid
	}
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
// Сравнение выполняется с точностью до дня, время суток игнорируется
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
