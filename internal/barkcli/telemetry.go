package barkcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type RadioView struct {
	RadioViewName string `json:"radioViewName"`
}

type DownlinkFormat struct {
	FormatName string `json:"formatName"`
}

// MissionDetails carries the lookup tables the API embeds in the
// mission-details response, keyed by stringified numeric IDs.
type MissionDetails struct {
	RadioViews      map[string]RadioView      `json:"radioViews"`
	DownlinkFormats map[string]DownlinkFormat `json:"downlinkFormats"`
}

// RadioViewName resolves a radio-view ID to its display name, falling
// back to the numeric ID when the mission does not know it.
func (d MissionDetails) RadioViewName(id int) string {
	if view, ok := d.RadioViews[strconv.Itoa(id)]; ok && view.RadioViewName != "" {
		return view.RadioViewName
	}
	return strconv.Itoa(id)
}

// FormatName resolves a downlink-format ID to its display name.
func (d MissionDetails) FormatName(id int) string {
	if format, ok := d.DownlinkFormats[strconv.Itoa(id)]; ok && format.FormatName != "" {
		return format.FormatName
	}
	return strconv.Itoa(id)
}

type PacketField struct {
	FieldName string `json:"fieldName"`
	Value     any    `json:"value"`
}

type Packet struct {
	RadioViewID  int           `json:"radioViewID"`
	FormatID     int           `json:"formatID"`
	GatewayTS    string        `json:"gatewayTS"`
	NumBytes     int           `json:"numBytes"`
	PacketFields []PacketField `json:"packetFields"`
}

type UplinkCommand struct {
	MissionID   string         `json:"missionID"`
	RadioViewID int            `json:"radioViewID"`
	FormatID    int            `json:"formatID"`
	Fields      map[string]any `json:"fields,omitempty"`
	Note        string         `json:"note,omitempty"`
}

func missingMissionID() error {
	return errors.New("missing mission id; run `bark config --mission-id <mission-id>`")
}

// MissionDetailsRaw fetches mission details and returns the untouched
// `return` payload for pretty-printing.
func (c *Client) MissionDetailsRaw(missionID string) (json.RawMessage, error) {
	missionID = strings.TrimSpace(missionID)
	if missionID == "" {
		return nil, missingMissionID()
	}
	return c.Call("getMissionDetails", map[string]any{"missionID": missionID})
}

func (c *Client) MissionDetails(missionID string) (MissionDetails, error) {
	raw, err := c.MissionDetailsRaw(missionID)
	if err != nil {
		return MissionDetails{}, err
	}
	var details MissionDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return MissionDetails{}, fmt.Errorf("decode mission details: %w", err)
	}
	return details, nil
}

func (c *Client) RecentPackets(missionID string) ([]Packet, error) {
	missionID = strings.TrimSpace(missionID)
	if missionID == "" {
		return nil, missingMissionID()
	}
	raw, err := c.Call("getRecentPackets", map[string]any{"missionID": missionID})
	if err != nil {
		return nil, err
	}
	var packets []Packet
	if err := json.Unmarshal(raw, &packets); err != nil {
		return nil, fmt.Errorf("decode packets: %w", err)
	}
	return packets, nil
}

func (c *Client) SendUplink(cmd UplinkCommand) (json.RawMessage, error) {
	cmd.MissionID = strings.TrimSpace(cmd.MissionID)
	if cmd.MissionID == "" {
		return nil, missingMissionID()
	}
	if cmd.RadioViewID <= 0 {
		return nil, errors.New("radio view id is required")
	}
	if cmd.FormatID <= 0 {
		return nil, errors.New("format id is required")
	}
	return c.Call("sendUplinkCommand", cmd)
}
