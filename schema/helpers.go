package schema

import "fmt"

// UnfitLabelSuffix is appended to the trace name when no estimate exists.
const UnfitLabelSuffix = "(fit: insufficient data)"

// FormatFitLabel renders the legend/report label for one trace. Parameter
// estimates are shown to 3 significant figures; unfit traces get an explicit
// insufficient-data marker instead.
func FormatFitLabel(traceID int, f FitResult) string {
	if !f.Fitted {
		return fmt.Sprintf("Trace %d %s", traceID, UnfitLabelSuffix)
	}
	if f.Model == FixedRateModel {
		return fmt.Sprintf("Trace %d (A=%.3g)", traceID, f.Amplitude)
	}
	return fmt.Sprintf("Trace %d (A=%.3g, B=%.3g)", traceID, f.Amplitude, f.Rate)
}
