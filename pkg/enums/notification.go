package enums

import "fmt"

// NotificationKind selects the banner styling for a transient notification.
type NotificationKind string

const (
	NotificationKindSuccess NotificationKind = "success"
	NotificationKindError   NotificationKind = "error"
)

var validNotificationKinds = []NotificationKind{
	NotificationKindSuccess,
	NotificationKindError,
}

// IsValid checks whether the given kind matches the canonical enum.
func (n NotificationKind) IsValid() bool {
	for _, candidate := range validNotificationKinds {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationKind converts raw strings into NotificationKind.
func ParseNotificationKind(value string) (NotificationKind, error) {
	for _, candidate := range validNotificationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification kind %q", value)
}

// BannerState tracks a banner through its dismissal sequence.
type BannerState string

const (
	BannerStateVisible BannerState = "visible"
	BannerStateFading  BannerState = "fading"
	BannerStateRemoved BannerState = "removed"
)
