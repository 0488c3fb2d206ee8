package skeleton

import "sync/atomic"

var nextVertexAttachmentID atomic.Int64

// Attachment is anything a slot can display.
type Attachment interface {
	AttachmentName() string
}

// RegionAttachment is a textured quad. Only its name matters to animation.
type RegionAttachment struct {
	Name string
}

// AttachmentName implements Attachment.
func (r *RegionAttachment) AttachmentName() string { return r.Name }

// VertexAttachment is an attachment whose vertices can be deformed.
//
// Bones is nil for unweighted attachments, in which case Vertices holds
// bind pose positions. For weighted attachments Vertices holds bone weights
// and the deform values are offsets.
type VertexAttachment struct {
	// ID is unique per process and keys deform timelines.
	ID                  int
	Name                string
	Bones               []int
	Vertices            []float64
	WorldVerticesLength int
	// DeformAttachment is the attachment whose deform keys apply to this one.
	// Linked meshes point it at their parent.
	DeformAttachment *VertexAttachment
}

// NewVertexAttachment creates an unweighted vertex attachment that deforms itself.
// Set Bones afterwards for a weighted attachment.
func NewVertexAttachment(name string, vertices []float64) *VertexAttachment {
	v := &VertexAttachment{
		ID:                  int(nextVertexAttachmentID.Add(1)),
		Name:                name,
		Vertices:            vertices,
		WorldVerticesLength: len(vertices),
	}
	v.DeformAttachment = v
	return v
}

// AttachmentName implements Attachment.
func (v *VertexAttachment) AttachmentName() string { return v.Name }

type skinKey struct {
	slot int
	name string
}

// Skin maps slot index and attachment name to attachments.
type Skin struct {
	Name        string
	Bones       []*BoneData
	Constraints []string

	attachments map[skinKey]Attachment
}

// NewSkin creates an empty skin.
func NewSkin(name string) *Skin {
	return &Skin{Name: name, attachments: make(map[skinKey]Attachment)}
}

// SetAttachment adds an attachment for the slot.
func (s *Skin) SetAttachment(slotIndex int, name string, attachment Attachment) {
	s.attachments[skinKey{slotIndex, name}] = attachment
}

// GetAttachment returns the named attachment for the slot, or nil.
func (s *Skin) GetAttachment(slotIndex int, name string) Attachment {
	return s.attachments[skinKey{slotIndex, name}]
}
