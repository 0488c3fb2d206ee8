package skeleton

import "errors"

// ErrNilData is returned when a skeleton is created without setup data.
var ErrNilData = errors.New("skeleton data is nil")

// Skeleton is one posable instance of a SkeletonData.
type Skeleton struct {
	Data                 *SkeletonData
	Bones                []*Bone
	Slots                []*Slot
	DrawOrder            []*Slot
	IkConstraints        []*IkConstraint
	TransformConstraints []*TransformConstraint
	PathConstraints      []*PathConstraint
	Skin                 *Skin
	Color                Color

	X, Y           float64
	ScaleX, ScaleY float64
}

// New creates a skeleton in its setup pose.
func New(data *SkeletonData) (*Skeleton, error) {
	if data == nil {
		return nil, ErrNilData
	}
	s := &Skeleton{Data: data, Color: White(), ScaleX: 1, ScaleY: 1}

	s.Bones = make([]*Bone, len(data.Bones))
	for i, bd := range data.Bones {
		var parent *Bone
		if bd.Parent != nil {
			parent = s.Bones[bd.Parent.Index]
		}
		b := newBone(bd, s, parent)
		if parent != nil {
			parent.Children = append(parent.Children, b)
		}
		s.Bones[i] = b
	}

	s.Slots = make([]*Slot, len(data.Slots))
	s.DrawOrder = make([]*Slot, len(data.Slots))
	for i, sd := range data.Slots {
		slot := newSlot(sd, s.Bones[sd.BoneData.Index])
		s.Slots[i] = slot
		s.DrawOrder[i] = slot
	}

	for _, cd := range data.IkConstraints {
		c := &IkConstraint{Data: cd, Active: true}
		c.SetToSetupPose()
		s.IkConstraints = append(s.IkConstraints, c)
	}
	for _, cd := range data.TransformConstraints {
		c := &TransformConstraint{Data: cd, Active: true}
		c.SetToSetupPose()
		s.TransformConstraints = append(s.TransformConstraints, c)
	}
	for _, cd := range data.PathConstraints {
		c := &PathConstraint{Data: cd, Active: true}
		c.SetToSetupPose()
		s.PathConstraints = append(s.PathConstraints, c)
	}
	s.updateActive()
	return s, nil
}

// SetSkin changes the skin. Bones and constraints that require a skin become
// active only if the new skin lists them.
func (s *Skeleton) SetSkin(skin *Skin) {
	s.Skin = skin
	s.updateActive()
}

func (s *Skeleton) updateActive() {
	bones := make(map[*BoneData]bool)
	constraints := make(map[string]bool)
	if s.Skin != nil {
		for _, b := range s.Skin.Bones {
			bones[b] = true
		}
		for _, c := range s.Skin.Constraints {
			constraints[c] = true
		}
	}
	for _, b := range s.Bones {
		b.Active = !b.Data.SkinRequired || bones[b.Data]
		if b.Parent != nil && !b.Parent.Active {
			b.Active = false
		}
	}
	for _, c := range s.IkConstraints {
		c.Active = !c.Data.SkinRequired || constraints[c.Data.Name]
	}
	for _, c := range s.TransformConstraints {
		c.Active = !c.Data.SkinRequired || constraints[c.Data.Name]
	}
	for _, c := range s.PathConstraints {
		c.Active = !c.Data.SkinRequired || constraints[c.Data.Name]
	}
}

// SetToSetupPose resets bones, constraints, slots and draw order.
func (s *Skeleton) SetToSetupPose() {
	s.SetBonesToSetupPose()
	s.SetSlotsToSetupPose()
}

// SetBonesToSetupPose resets bones and constraints.
func (s *Skeleton) SetBonesToSetupPose() {
	for _, b := range s.Bones {
		b.SetToSetupPose()
	}
	for _, c := range s.IkConstraints {
		c.SetToSetupPose()
	}
	for _, c := range s.TransformConstraints {
		c.SetToSetupPose()
	}
	for _, c := range s.PathConstraints {
		c.SetToSetupPose()
	}
}

// SetSlotsToSetupPose resets slots and the draw order.
func (s *Skeleton) SetSlotsToSetupPose() {
	copy(s.DrawOrder, s.Slots)
	for _, slot := range s.Slots {
		slot.SetToSetupPose()
	}
}

// GetAttachment looks the attachment up in the current skin, then the default skin.
func (s *Skeleton) GetAttachment(slotIndex int, name string) Attachment {
	if name == "" {
		return nil
	}
	if s.Skin != nil {
		if a := s.Skin.GetAttachment(slotIndex, name); a != nil {
			return a
		}
	}
	if s.Data.DefaultSkin != nil {
		return s.Data.DefaultSkin.GetAttachment(slotIndex, name)
	}
	return nil
}

// FindBone returns the bone with the given name, or nil.
func (s *Skeleton) FindBone(name string) *Bone {
	for _, b := range s.Bones {
		if b.Data.Name == name {
			return b
		}
	}
	return nil
}

// FindSlot returns the slot with the given name, or nil.
func (s *Skeleton) FindSlot(name string) *Slot {
	for _, slot := range s.Slots {
		if slot.Data.Name == name {
			return slot
		}
	}
	return nil
}

// UpdateWorldTransform recomputes world transforms of all active bones.
// Bones are stored parent first, so a single pass is enough.
func (s *Skeleton) UpdateWorldTransform() {
	for _, b := range s.Bones {
		if b.Active {
			b.UpdateWorldTransform()
		}
	}
}
