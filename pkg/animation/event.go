package animation

// EventData is the setup values of a named event.
type EventData struct {
	Name        string
	IntValue    int
	FloatValue  float64
	StringValue string
	AudioPath   string
	Volume      float64
	Balance     float64
}

// NewEventData creates event data with full volume.
func NewEventData(name string) *EventData {
	return &EventData{Name: name, Volume: 1}
}

// Event is a keyed occurrence of an EventData on an EventTimeline.
type Event struct {
	Data        *EventData
	Time        float64
	IntValue    int
	FloatValue  float64
	StringValue string
	Volume      float64
	Balance     float64
}

// NewEvent creates an event at time carrying the data's default values.
func NewEvent(time float64, data *EventData) *Event {
	return &Event{
		Data:        data,
		Time:        time,
		IntValue:    data.IntValue,
		FloatValue:  data.FloatValue,
		StringValue: data.StringValue,
		Volume:      data.Volume,
		Balance:     data.Balance,
	}
}
