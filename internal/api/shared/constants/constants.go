package constants

const (
	MAX_PAGE_SIZE            = 200
	DEFAULT_ATTENDANCE_LIMIT = 50
	DEFAULT_OFFSET           = 0
	MAX_NOTES_LENGTH         = 1000
	MAX_NAME_LENGTH          = 200
)
