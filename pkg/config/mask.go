package config

// MaskSecret hides a secret value, keeping only its first four characters.
// Values of four characters or fewer carry no visible prefix and are
// returned as "***". Characters are counted as runes.
func MaskSecret(v string) string {
	const visible = 4
	r := []rune(v)
	if len(r) <= visible {
		return "***"
	}
	return string(r[:visible]) + "***"
}
