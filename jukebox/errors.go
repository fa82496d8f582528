package jukebox

import "errors"

// ErrInsufficientPayment indicates the payment does not equal the play
// price exactly. Over-payment is rejected the same as under-payment.
var ErrInsufficientPayment = errors.New("jukebox: insufficient payment")
