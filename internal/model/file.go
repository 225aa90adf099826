package model

import "time"

// File is an uploaded blob with metadata. Content is stored in the
// database and is only loaded when the file itself is requested;
// listings scan the metadata columns alone.
type File struct {
	ID               uint64     `json:"id"`                          // files.id
	UploadedBy       uint64     `json:"uploaded_by"`                 // files.uploaded_by (owner)
	FileName         string     `json:"file_name"`                   // files.file_name
	FileType         string     `json:"file_type"`                   // files.file_type (MIME)
	FileExtension    string     `json:"file_extension"`              // files.file_extension
	UploadDate       time.Time  `json:"upload_date"`                 // files.upload_date
	ModificationDate *time.Time `json:"modification_date,omitempty"` // files.modification_date (nullable)
	Operation        string     `json:"operation"`                   // files.operation (audit tag, e.g. "Upload")
	Content          []byte     `json:"-"`                           // files.content (never serialized)
}
