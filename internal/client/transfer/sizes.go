package transfer

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count in binary units (base 1024) with two
// decimal places, e.g. 1536 -> "1.50 KB". Plain bytes carry no decimals;
// zero and negative counts render as "0 B".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[i])
}
