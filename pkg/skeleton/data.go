// Package skeleton holds the setup data and mutable pose of a 2D skeleton.
//
// The animation packages only read setup values from the *Data structs and
// write the pose fields on Bone, Slot and the constraint types. World
// transforms support normal inheritance only and are used for debug drawing.
package skeleton

// BoneData is the setup pose of a bone.
type BoneData struct {
	Index  int
	Name   string
	Parent *BoneData
	Length float64

	X, Y           float64
	Rotation       float64
	ScaleX, ScaleY float64
	ShearX, ShearY float64
	SkinRequired   bool
}

// NewBoneData creates bone setup data with unit scale.
func NewBoneData(index int, name string, parent *BoneData) *BoneData {
	return &BoneData{Index: index, Name: name, Parent: parent, ScaleX: 1, ScaleY: 1}
}

// SlotData is the setup pose of a slot.
type SlotData struct {
	Index    int
	Name     string
	BoneData *BoneData
	Color    Color
	// DarkColor is nil when the slot does not use two color tinting.
	DarkColor      *Color
	AttachmentName string
}

// NewSlotData creates slot setup data with a white color.
func NewSlotData(index int, name string, bone *BoneData) *SlotData {
	return &SlotData{Index: index, Name: name, BoneData: bone, Color: White()}
}

// IkConstraintData is the setup state of an IK constraint.
type IkConstraintData struct {
	Name          string
	Order         int
	Bones         []*BoneData
	Target        *BoneData
	Mix           float64
	Softness      float64
	BendDirection int
	Compress      bool
	Stretch       bool
	Uniform       bool
	SkinRequired  bool
}

// TransformConstraintData is the setup state of a transform constraint.
type TransformConstraintData struct {
	Name         string
	Order        int
	Bones        []*BoneData
	Target       *BoneData
	MixRotate    float64
	MixX, MixY   float64
	MixScaleX    float64
	MixScaleY    float64
	MixShearY    float64
	SkinRequired bool
}

// PositionMode controls how a path constraint position is interpreted.
type PositionMode int

const (
	PositionFixed PositionMode = iota
	PositionPercent
)

// SpacingMode controls how path constraint spacing is interpreted.
type SpacingMode int

const (
	SpacingLength SpacingMode = iota
	SpacingFixed
	SpacingPercent
	SpacingProportional
)

// PathConstraintData is the setup state of a path constraint.
type PathConstraintData struct {
	Name         string
	Order        int
	Bones        []*BoneData
	Target       *SlotData
	PositionMode PositionMode
	SpacingMode  SpacingMode
	Position     float64
	Spacing      float64
	MixRotate    float64
	MixX, MixY   float64
	SkinRequired bool
}

// SkeletonData is the immutable setup data shared by skeleton instances.
type SkeletonData struct {
	Name                 string
	Bones                []*BoneData
	Slots                []*SlotData
	Skins                []*Skin
	DefaultSkin          *Skin
	IkConstraints        []*IkConstraintData
	TransformConstraints []*TransformConstraintData
	PathConstraints      []*PathConstraintData
}

// FindBone returns the bone data with the given name, or nil.
func (d *SkeletonData) FindBone(name string) *BoneData {
	for _, b := range d.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// FindSlot returns the slot data with the given name, or nil.
func (d *SkeletonData) FindSlot(name string) *SlotData {
	for _, s := range d.Slots {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindSkin returns the skin with the given name, or nil.
func (d *SkeletonData) FindSkin(name string) *Skin {
	for _, s := range d.Skins {
		if s.Name == name {
			return s
		}
	}
	return nil
}
