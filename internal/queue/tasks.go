package queue

const (
	TypeFestivalSync = "festival:sync"

	// FestivalSyncTaskID is shared by API and scheduled runs so that at most
	// one sync is pending or running at a time.
	FestivalSyncTaskID = "festival-sync"

	QueueDefault = "default"
)

type FestivalSyncPayload struct {
	// Trigger is "api" or "schedule".
	Trigger string `json:"trigger"`
}
