package domain

import "time"

// Namespace is one of the two logical buckets an object can live in.
type Namespace string

const (
	// NamespaceOriginal holds ingested uploads exactly as received.
	NamespaceOriginal Namespace = "original"
	// NamespaceDerived holds sanitized re-encoded outputs.
	NamespaceDerived Namespace = "derived"
)

// Namespaces lists every bucket, in no particular order.
var Namespaces = []Namespace{NamespaceOriginal, NamespaceDerived}

// OutputExtension is the fixed extension of every derived object.
const OutputExtension = "jpg"

// StoredObject describes one file on durable storage.
type StoredObject struct {
	ID        string    `json:"id"`
	Namespace Namespace `json:"namespace"`
	Extension string    `json:"extension"`
	Size      int64     `json:"size"`
	// Checksum is the murmur3 sum of the object bytes, 0 when unknown.
	Checksum  uint32    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}

// Age returns how long ago the object was created.
// CreatedAt is immutable once the object is published.
func (o StoredObject) Age(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt)
}

// MetadataSnapshot maps extracted tag names to their string values.
// It is immutable once produced and never persisted past the upload response.
type MetadataSnapshot map[string]string

// UploadReceipt is returned to the client after a successful submit.
type UploadReceipt struct {
	Success       bool             `json:"success"`
	FileID        string           `json:"file_id"`
	OriginalName  string           `json:"original_filename"`
	OriginalSize  int64            `json:"original_size"`
	ProcessedSize int64            `json:"processed_size"`
	Metadata      MetadataSnapshot `json:"exif_data"`
}
