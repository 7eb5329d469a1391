package convert

import (
	"log/slog"

	"github.com/OpenTraceLab/jlcimport/pkg/kicad/symbol"
)

// EasyEDA electric codes
var pinTypes = map[int]string{
	0: symbol.PinUnspecified,
	1: symbol.PinInput,
	2: symbol.PinOutput,
	3: symbol.PinBidirectional,
	4: symbol.PinPowerIn,
}

// PinType maps an EasyEDA electric code to a KiCad pin type.
func PinType(code int) (string, bool) {
	t, ok := pinTypes[code]
	return t, ok
}

func pinType(log *slog.Logger, code int, number string) string {
	if t, ok := PinType(code); ok {
		return t
	}
	log.Warn("unmapped pin type", "pin", number, "code", code)
	return symbol.PinUnspecified
}
