package valueobject

// PaymentChannel is the settlement medium a cash movement is denominated in.
// Every transaction, acquisition and cost event settles on exactly one channel.
type PaymentChannel string

const (
	ChannelCash   PaymentChannel = "CASH"
	ChannelOnline PaymentChannel = "ONLINE"
)

// IsValid checks if the channel is a known PaymentChannel
func (c PaymentChannel) IsValid() bool {
	switch c {
	case ChannelCash, ChannelOnline:
		return true
	}
	return false
}

// String returns the string representation of PaymentChannel
func (c PaymentChannel) String() string {
	return string(c)
}

// AllPaymentChannels lists every valid channel, in display order
func AllPaymentChannels() []PaymentChannel {
	return []PaymentChannel{ChannelCash, ChannelOnline}
}
