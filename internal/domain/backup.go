package domain

// BackupTimeLayout is the timestamp format of export files.
const BackupTimeLayout = "2006-01-02 15:04:05"

// BackupRecord is one note in a backup dump. Binary payloads (attachment
// bytes, stroke log, drawing image) are left out; only the attachment
// filename survives so a restored note still shows what it referenced.
type BackupRecord struct {
	ID    string   `json:"id,omitempty"`
	Kind  NoteKind `json:"kind"`
	Title string   `json:"title"`
	Body  string   `json:"body,omitempty"`

	Labels             []string `json:"labels,omitempty"`
	AttachmentFilename string   `json:"attachment_filename,omitempty"`

	UpdatedAt   string `json:"updated_at"`
	Deleted     bool   `json:"deleted"`
	Pinned      bool   `json:"pinned"`
	CustomOrder int    `json:"custom_order"`

	CalendarDate *string `json:"calendar_date"`
	Recurrence   string  `json:"recurrence,omitempty"`
	RecurMonth   int     `json:"recur_month,omitempty"`
	RecurDay     int     `json:"recur_day,omitempty"`
	RecurEndYear *int    `json:"recur_end_year,omitempty"`

	IsDefaultPlaceholder bool `json:"is_default_placeholder,omitempty"`
}
