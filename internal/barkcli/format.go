package barkcli

import (
	"fmt"
	"io"
	"strings"
)

// FormatPacket writes the multi-line summary for one downlinked packet,
// resolving radio and format names through the mission lookup tables.
func FormatPacket(w io.Writer, details MissionDetails, p Packet) {
	fmt.Fprintf(w, "%s %s\n", details.RadioViewName(p.RadioViewID), details.FormatName(p.FormatID))
	fmt.Fprintf(w, "  %s UTC\n", p.GatewayTS)
	fmt.Fprintf(w, "  %d bytes\n", p.NumBytes)
	fmt.Fprintf(w, "  fields: %s\n", formatPacketFields(p.PacketFields))
}

func formatPacketFields(fields []PacketField) string {
	if len(fields) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.FieldName, f.Value))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
