package keycrypto

// Password is an optional passphrase for private key encryption. The zero
// value means "no password", which is not the same thing as an empty-string
// password: an empty string still encrypts.
type Password struct {
	value string
	ok    bool
}

func NewPassword(value string) Password {
	return Password{value: value, ok: true}
}

func (password Password) IsSet() bool {
	return password.ok
}

// Bytes returns the passphrase for the encryption routine. Only meaningful
// when IsSet reports true.
func (password Password) Bytes() []byte {
	return []byte(password.value)
}

// String redacts. Password values pass through loggers and error formatting,
// and the cleartext must never come out the other side.
func (password Password) String() string {
	if password.ok {
		return "(set)"
	}
	return "(unset)"
}
