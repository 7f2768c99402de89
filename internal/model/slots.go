package model

// DayPart groups the bookable time slots of one part of the operating
// day.  Slots are HH:MM strings in 24-hour form, ordered earliest first.
type DayPart struct {
	Label string   `json:"label"`
	Slots []string `json:"slots"`
}

// SlotCatalog is the fixed set of bookable time slots and the per-slot
// reservation cap.  It is constructed once at process start and passed
// to the components that need it; nothing mutates it afterwards.
type SlotCatalog struct {
	Parts      []DayPart
	MaxPerSlot int
}

// DefaultSlotCatalog returns the catalog for ingri's operating hours:
// 08:00 through 21:30 in 30-minute increments, split across three day
// parts, with at most six reservations per slot.
func DefaultSlotCatalog() SlotCatalog {
	return SlotCatalog{
		Parts: []DayPart{
			{Label: "Morning", Slots: []string{
				"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
			}},
			{Label: "Afternoon", Slots: []string{
				"12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
			}},
			{Label: "Evening", Slots: []string{
				"17:00", "17:30", "18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00", "21:30",
			}},
		},
		MaxPerSlot: 6,
	}
}

// Contains reports whether t is one of the catalog's bookable slots.
func (c SlotCatalog) Contains(t string) bool {
	for _, part := range c.Parts {
		for _, s := range part.Slots {
			if s == t {
				return true
			}
		}
	}
	return false
}

// AllSlots returns every slot in the catalog in day order.
func (c SlotCatalog) AllSlots() []string {
	var out []string
	for _, part := range c.Parts {
		out = append(out, part.Slots...)
	}
	return out
}
