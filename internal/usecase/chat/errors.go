package chat

import "errors"

// ErrEmptyMessage rejects blank input before it reaches the provider.
var ErrEmptyMessage = errors.New("chat: message is empty")
