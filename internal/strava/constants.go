package strava

const (
	// Strava API URLs
	authURL       = "https://www.strava.com/oauth/authorize"
	tokenURL      = "https://www.strava.com/oauth/token"
	apiURLBase    = "https://www.strava.com/api/v3"
	activitiesURL = apiURLBase + "/athlete/activities"
	athleteURL    = apiURLBase + "/athlete"

	// athleteStatsFmt takes the numeric athlete ID.
	athleteStatsFmt = apiURLBase + "/athletes/%d/stats"

	// Provider maximum page size. The pagination loop stops on the first
	// page shorter than this.
	perPage = 200
)
