package scheduler

import (
	"slices"
)

// DaySlotSet holds the slots one participant said they are available for.
// Adding a key twice is a no-op.
type DaySlotSet struct {
	Participant string
	Sessions    []string

	slots map[SlotKey]struct{}
}

func NewDaySlotSet(participant string, keys ...SlotKey) *DaySlotSet {
	result := DaySlotSet{
		Participant: participant,

		slots: make(map[SlotKey]struct{}, len(keys)),
	}

	result.Add(keys...)

	return &result
}

// ParseDaySlotSet builds a set from "YYYY-MM-DD HH:mm" keys as submitted.
func ParseDaySlotSet(participant string, raw []string) (*DaySlotSet, error) {
	result := NewDaySlotSet(participant)

	for _, text := range raw {
		key, errParse := ParseSlotKey(text)
		if errParse != nil {
			return nil,
				errParse
		}

		result.Add(key)
	}

	return result,
		nil
}

func (s *DaySlotSet) Add(keys ...SlotKey) {
	if s.slots == nil {
		s.slots = make(map[SlotKey]struct{}, len(keys))
	}

	for _, key := range keys {
		s.slots[key] = struct{}{}
	}
}

func (s *DaySlotSet) Remove(keys ...SlotKey) {
	for _, key := range keys {
		delete(s.slots, key)
	}
}

func (s *DaySlotSet) Contains(key SlotKey) bool {
	_, exists := s.slots[key]

	return exists
}

func (s *DaySlotSet) Len() int {
	return len(s.slots)
}

// Keys returns the slots in chronological order.
func (s *DaySlotSet) Keys() []SlotKey {
	result := make([]SlotKey, 0, len(s.slots))

	for key := range s.slots {
		result = append(result, key)
	}

	slices.SortFunc(
		result,
		func(a, b SlotKey) int {
			return a.Compare(b)
		},
	)

	return result
}
