package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	scheduler "github.com/yj0602/mechanics-scheduler-plus"
)

type fixtureBooking struct {
	Date  scheduler.Date      `yaml:"date"`
	Start scheduler.TimeOfDay `yaml:"start"`
	End   scheduler.TimeOfDay `yaml:"end"`
	Owner string              `yaml:"owner"`
	Label string              `yaml:"label"`
	Kind  scheduler.Kind      `yaml:"kind"`

	RehearsalStart scheduler.TimeOfDay `yaml:"rehearsal_start"`
	RehearsalEnd   scheduler.TimeOfDay `yaml:"rehearsal_end"`
}

type fixtureResponse struct {
	Participant string   `yaml:"participant"`
	Sessions    []string `yaml:"sessions"`
	Slots       []string `yaml:"slots"`
}

type fixtureRoom struct {
	Title       string              `yaml:"title"`
	Dates       []scheduler.Date    `yaml:"dates"`
	Start       scheduler.TimeOfDay `yaml:"start"`
	End         scheduler.TimeOfDay `yaml:"end"`
	Granularity int                 `yaml:"granularity"`
	Responses   []fixtureResponse   `yaml:"responses"`
}

type fixture struct {
	Bookings []fixtureBooking `yaml:"bookings"`
	Room     *fixtureRoom     `yaml:"room"`
}

func decodeFixture(r io.Reader) (*fixture, error) {
	var result fixture

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if errDecode := decoder.Decode(&result); errDecode != nil {
		return nil,
			fmt.Errorf("decode fixture: %w", errDecode)
	}

	return &result,
		nil
}

func (b fixtureBooking) params() *scheduler.ParamsBook {
	return &scheduler.ParamsBook{
		Date:      b.Date,
		TimeStart: b.Start,
		TimeEnd:   b.End,
		Owner:     b.Owner,
		Label:     b.Label,
		Kind:      b.Kind,
	}
}

func (r *fixtureRoom) window(fallback scheduler.Granularity) *scheduler.SchedulingWindow {
	granularity := scheduler.Granularity(r.Granularity)
	if granularity == 0 {
		granularity = fallback
	}

	return &scheduler.SchedulingWindow{
		Dates:       r.Dates,
		TimeStart:   r.Start,
		TimeEnd:     r.End,
		Granularity: granularity,
	}
}

func (r *fixtureRoom) participants() ([]*scheduler.DaySlotSet, error) {
	result := make([]*scheduler.DaySlotSet, 0, len(r.Responses))

	for _, response := range r.Responses {
		set, errParse := scheduler.ParseDaySlotSet(response.Participant, response.Slots)
		if errParse != nil {
			return nil,
				fmt.Errorf("participant %q: %w", response.Participant, errParse)
		}

		set.Sessions = response.Sessions

		result = append(result, set)
	}

	return result,
		nil
}
