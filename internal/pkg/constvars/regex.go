package constvars

const (
	RegexPurposeTag    = `^[0-9a-fA-F-]{36}:stage_[1-3]$`
	RegexDecimalAmount = `^[0-9]+(\.[0-9]{1,2})?$`
)
