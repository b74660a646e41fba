package strava

import _ "embed"

//go:embed schemas/activity-v1.json
var ActivitySchema string
