package nslmock

// DefaultMissionDetails mirrors the shape of a real mission-details
// response: mission metadata plus the radio-view and downlink-format
// lookup tables keyed by stringified IDs.
func DefaultMissionDetails() map[string]any {
	return map[string]any{
		"missionName": "TestSat-1",
		"missionID":   "77",
		"radioViews": map[string]any{
			"1": map[string]any{"radioViewName": "EyeStar-S3"},
			"2": map[string]any{"radioViewName": "EyeStar-D2"},
		},
		"downlinkFormats": map[string]any{
			"10": map[string]any{"formatName": "Housekeeping"},
			"11": map[string]any{"formatName": "Science"},
		},
	}
}

func DefaultPackets() []map[string]any {
	return []map[string]any{
		{
			"radioViewID": 1,
			"formatID":    10,
			"gatewayTS":   "2026-08-20 14:02:11",
			"numBytes":    48,
			"packetFields": []map[string]any{
				{"fieldName": "battV", "value": 7.9},
				{"fieldName": "mode", "value": "nominal"},
			},
		},
		{
			"radioViewID":  2,
			"formatID":     11,
			"gatewayTS":    "2026-08-20 14:01:40",
			"numBytes":     10,
			"packetFields": []map[string]any{},
		},
	}
}
