package domain

// TimeSlot временной интервал визита мастера
// Набор слотов фиксированный, клиент выбирает один из шести
type TimeSlot string

const (
	SlotMorningEarly   TimeSlot = "09:00-11:00"
	SlotMorningLate    TimeSlot = "11:00-13:00"
	SlotAfternoonEarly TimeSlot = "13:00-15:00"
	SlotAfternoonLate  TimeSlot = "15:00-17:00"
	SlotEveningEarly   TimeSlot = "17:00-19:00"
	SlotEveningLate    TimeSlot = "19:00-21:00"
)

// AllTimeSlots полный список доступных слотов в порядке следования по дню
var AllTimeSlots = []TimeSlot{
	SlotMorningEarly,
	SlotMorningLate,
	SlotAfternoonEarly,
	SlotAfternoonLate,
	SlotEveningEarly,
	SlotEveningLate,
}

// IsValid возвращает true, если слот входит в фиксированный набор
func (s TimeSlot) IsValid() bool {
	for _, slot := range AllTimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func (s TimeSlot) String() string {
	return string(s)
}
