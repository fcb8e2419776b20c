package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Channel represents the sales channel an order was taken through.
// It is immutable after the order is created.
type Channel int

const (
	ChannelCounter  Channel = 1
	ChannelDelivery Channel = 2
)

func (c Channel) String() string {
	switch c {
	case ChannelCounter:
		return "counter"
	case ChannelDelivery:
		return "delivery"
	}
	return "unknown"
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelCounter || c == ChannelDelivery
}

func (c Channel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Channel) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = Channel(i)
		return nil
	}
	switch str {
	case "counter":
		*c = ChannelCounter
	case "delivery":
		*c = ChannelDelivery
	}
	return nil
}

func (c Channel) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *Channel) Scan(value interface{}) error {
	if value == nil {
		*c = ChannelCounter
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = Channel(v)
	case int:
		*c = Channel(v)
	}
	return nil
}
