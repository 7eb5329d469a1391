package convert

import "log/slog"

// EasyEDA footprint layer ids
const (
	layerTopCopper    = 1
	layerBottomCopper = 2
	layerMulti        = 11
)

var footprintLayers = map[int]string{
	1:   "F.Cu",
	2:   "B.Cu",
	3:   "F.SilkS",
	4:   "B.SilkS",
	5:   "F.Paste",
	6:   "B.Paste",
	7:   "F.Mask",
	8:   "B.Mask",
	10:  "Edge.Cuts",
	12:  "Cmts.User",
	13:  "F.Fab",
	14:  "B.Fab",
	15:  "Dwgs.User",
	99:  "F.Fab", // component shape
	100: "F.Fab", // lead shape
	101: "F.SilkS",
}

// DefaultLayer receives drawings on layers with no KiCad counterpart.
const DefaultLayer = "F.SilkS"

// FootprintLayer maps an EasyEDA layer id to a KiCad layer name.
func FootprintLayer(id int) (string, bool) {
	name, ok := footprintLayers[id]
	return name, ok
}

func graphicLayer(log *slog.Logger, id int) string {
	if name, ok := FootprintLayer(id); ok {
		return name
	}
	log.Debug("unknown layer, using default", "layer", id, "default", DefaultLayer)
	return DefaultLayer
}

// padLayers lists the layers of a pad in KiCad's own order.
func padLayers(id int, drilled bool) []string {
	switch {
	case drilled:
		return []string{"*.Cu", "*.Mask"}
	case id == layerBottomCopper:
		return []string{"B.Cu", "B.Paste", "B.Mask"}
	default:
		return []string{"F.Cu", "F.Paste", "F.Mask"}
	}
}
