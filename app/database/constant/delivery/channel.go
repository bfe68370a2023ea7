package delivery

import (
	"fmt"
)

// Channel is the transport a verification code is delivered over
type Channel string

const (
	Sms   Channel = "sms"
	Email Channel = "email"
)

func (c *Channel) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan DeliveryChannel from %T", value)
	}
	*c = Channel(str)
	return nil
}
