package quote

// Printer technologies.
const (
	PrinterFDM  = "FDM"
	PrinterSLA  = "SLA"
	PrinterSLS  = "SLS"
	PrinterDLP  = "DLP"
	PrinterMSLA = "MSLA"
)

// Support structure styles.
const (
	SupportTree   = "tree"
	SupportLinear = "linear"
)

var (
	printerTypes = set(PrinterFDM, PrinterSLA, PrinterSLS, PrinterDLP, PrinterMSLA)

	nozzleSizes = set("0.2", "0.4", "0.6", "0.8", "1.0")

	supportTypes = set(SupportTree, SupportLinear)

	filamentTypes = set("PLA", "ABS", "PETG", "TPU", "Nylon", "HIPS", "PC", "ASA")

	filamentColors = set(
		"black", "white", "red", "blue", "green", "yellow",
		"gray", "transparent", "orange", "purple", "silver", "gold",
	)

	filamentDiameters = map[float64]struct{}{1.75: {}, 2.85: {}, 3.0: {}}
)

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
