package skeleton

// Slot is the mutable state of a slot: color, attachment and vertex deform.
type Slot struct {
	Data      *SlotData
	Bone      *Bone
	Color     Color
	DarkColor *Color

	// Deform holds per vertex values for the current VertexAttachment.
	// It is cleared whenever the attachment changes to one with a different
	// deform attachment.
	Deform []float64

	// AttachmentState is scratch space for animation passes; it records which
	// pass last set the attachment.
	AttachmentState int

	attachment Attachment
}

func newSlot(data *SlotData, bone *Bone) *Slot {
	s := &Slot{Data: data, Bone: bone}
	if data.DarkColor != nil {
		dark := *data.DarkColor
		s.DarkColor = &dark
	}
	s.SetToSetupPose()
	return s
}

// Skeleton returns the skeleton the slot belongs to.
func (s *Slot) Skeleton() *Skeleton {
	return s.Bone.Skeleton
}

// Attachment returns the current attachment, or nil.
func (s *Slot) Attachment() Attachment {
	return s.attachment
}

// SetAttachment changes the attachment. Deform values are kept only when the
// new attachment shares the deform attachment of the old one.
func (s *Slot) SetAttachment(attachment Attachment) {
	if s.attachment == attachment {
		return
	}
	newVA, ok1 := attachment.(*VertexAttachment)
	oldVA, ok2 := s.attachment.(*VertexAttachment)
	if !ok1 || !ok2 || newVA.DeformAttachment != oldVA.DeformAttachment {
		s.Deform = s.Deform[:0]
	}
	s.attachment = attachment
}

// SetToSetupPose resets color and attachment to the setup values.
func (s *Slot) SetToSetupPose() {
	s.Color = s.Data.Color
	if s.DarkColor != nil && s.Data.DarkColor != nil {
		*s.DarkColor = *s.Data.DarkColor
	}
	if s.Data.AttachmentName == "" {
		s.attachment = nil
	} else {
		s.attachment = nil
		s.SetAttachment(s.Skeleton().GetAttachment(s.Data.Index, s.Data.AttachmentName))
	}
}
