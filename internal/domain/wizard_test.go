package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// validSeed профиль клиента с полным адресом
func validSeed() CustomerSeed {
	return CustomerSeed{
		Name:    "Иван Петров",
		Email:   "ivan@example.com",
		Phone:   "+79990001122",
		Street:  "ул. Ленина, 10",
		City:    "Москва",
		State:   "Московская область",
		ZipCode: "101000",
	}
}

// fillSchedule заполняет шаг расписания валидными значениями
func fillSchedule(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.UpdateField(SectionScheduling, "preferredDate", "2025-06-20"))
	require.NoError(t, w.UpdateField(SectionScheduling, "preferredTimeSlot", "11:00-13:00"))
}

func TestNewWizard_SeededFromProfile(t *testing.T) {
	w := NewWizard(validSeed())

	assert.Equal(t, StepContactInfo, w.CurrentStep)
	assert.Empty(t, w.Errors)
	assert.False(t, w.SubmissionInFlight)

	assert.Equal(t, "Иван Петров", w.Draft.CustomerInfo.Name)
	assert.Equal(t, "ivan@example.com", w.Draft.CustomerInfo.Email)
	assert.Equal(t, "+79990001122", w.Draft.CustomerInfo.Phone)
	assert.Equal(t, "ул. Ленина, 10", w.Draft.Address.Street)
	assert.Equal(t, "Москва", w.Draft.Address.City)

	assert.Equal(t, DefaultQuantity, w.Draft.Quantity)
	assert.Equal(t, PaymentMethodCash, w.Draft.Payment.Method)
}

func TestWizard_AdvanceBlockedByEmptyContactInfo(t *testing.T) {
	w := NewWizard(CustomerSeed{})

	ok := w.Advance(testNow)

	assert.False(t, ok)
	assert.Equal(t, StepContactInfo, w.CurrentStep)
	assert.Contains(t, w.Errors, "customerInfo.name")
	assert.Contains(t, w.Errors, "customerInfo.email")
	assert.Contains(t, w.Errors, "customerInfo.phone")
}

func TestWizard_AdvanceThroughAllSteps(t *testing.T) {
	w := NewWizard(validSeed())

	require.True(t, w.Advance(testNow))
	assert.Equal(t, StepAddress, w.CurrentStep)

	require.True(t, w.Advance(testNow))
	assert.Equal(t, StepSchedule, w.CurrentStep)

	// Расписание пустое - переход блокируется
	require.False(t, w.Advance(testNow))
	assert.Equal(t, StepSchedule, w.CurrentStep)
	assert.Contains(t, w.Errors, "scheduling.preferredDate")
	assert.Contains(t, w.Errors, "scheduling.preferredTimeSlot")

	fillSchedule(t, w)
	require.True(t, w.Advance(testNow))
	assert.Equal(t, StepConfirm, w.CurrentStep)
	assert.Empty(t, w.Errors)
}

func TestWizard_AdvanceAtConfirmIsNoop(t *testing.T) {
	w := NewWizard(validSeed())
	fillSchedule(t, w)

	require.True(t, w.Advance(testNow))
	require.True(t, w.Advance(testNow))
	require.True(t, w.Advance(testNow))
	require.Equal(t, StepConfirm, w.CurrentStep)

	assert.True(t, w.Advance(testNow))
	assert.Equal(t, StepConfirm, w.CurrentStep)
}

func TestWizard_RetreatSkipsValidation(t *testing.T) {
	w := NewWizard(validSeed())
	require.True(t, w.Advance(testNow))
	require.Equal(t, StepAddress, w.CurrentStep)

	// Портим адрес: назад вернуться можно, вперёд - нет
	require.NoError(t, w.UpdateField(SectionAddress, "city", ""))

	w.Retreat()
	assert.Equal(t, StepContactInfo, w.CurrentStep)

	w.Retreat()
	assert.Equal(t, StepContactInfo, w.CurrentStep, "ниже первого шага не опускается")
}

func TestWizard_RetreatPreservesErrorsAndDraft(t *testing.T) {
	w := NewWizard(CustomerSeed{Name: "Иван"})
	require.False(t, w.Advance(testNow))
	require.NotEmpty(t, w.Errors)

	errsBefore := w.Errors.Clone()
	w.Retreat()

	assert.Equal(t, errsBefore, w.Errors)
	assert.Equal(t, "Иван", w.Draft.CustomerInfo.Name)
}

func TestWizard_UpdateFieldClearsOwnErrorOnly(t *testing.T) {
	w := NewWizard(CustomerSeed{})
	require.False(t, w.Advance(testNow))
	require.Contains(t, w.Errors, "customerInfo.name")
	require.Contains(t, w.Errors, "customerInfo.email")

	require.NoError(t, w.UpdateField(SectionCustomerInfo, "name", "Анна"))

	assert.NotContains(t, w.Errors, "customerInfo.name")
	assert.Contains(t, w.Errors, "customerInfo.email", "чужие ошибки не очищаются")
	assert.Equal(t, "Анна", w.Draft.CustomerInfo.Name)
}

func TestWizard_UpdateFieldCopyOnWrite(t *testing.T) {
	w := NewWizard(validSeed())
	draftBefore := w.Draft

	require.NoError(t, w.UpdateField(SectionCustomerInfo, "name", "Пётр"))

	assert.Equal(t, "Иван Петров", draftBefore.CustomerInfo.Name, "старый черновик не изменяется")
	assert.Equal(t, "Пётр", w.Draft.CustomerInfo.Name)
}

func TestWizard_UpdateQuantity(t *testing.T) {
	w := NewWizard(validSeed())

	require.NoError(t, w.UpdateField(SectionQuantity, "quantity", "3"))
	assert.Equal(t, 3, w.Draft.Quantity)

	assert.ErrorIs(t, w.UpdateField(SectionQuantity, "quantity", "0"), ErrInvalidFieldValue)
	assert.ErrorIs(t, w.UpdateField(SectionQuantity, "quantity", "51"), ErrInvalidFieldValue)
	assert.ErrorIs(t, w.UpdateField(SectionQuantity, "quantity", "abc"), ErrInvalidFieldValue)
	assert.Equal(t, 3, w.Draft.Quantity, "черновик не меняется при ошибке")
}

func TestWizard_UpdateFieldUnknownSectionAndField(t *testing.T) {
	w := NewWizard(validSeed())

	assert.ErrorIs(t, w.UpdateField("billing", "iban", "x"), ErrUnknownSection)
	assert.ErrorIs(t, w.UpdateField(SectionCustomerInfo, "nickname", "x"), ErrUnknownField)
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "customerInfo.email", FieldKey(SectionCustomerInfo, "email"))
	assert.Equal(t, "quantity", FieldKey(SectionQuantity, "quantity"))
}
