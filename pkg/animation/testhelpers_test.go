package animation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decker502/skelanim/pkg/skeleton"
)

// newTestData builds a rig with every kind of animatable state:
// bones root and arm, slots body (mesh, two color) and hat, and one
// constraint of each kind.
func newTestData() *skeleton.SkeletonData {
	root := skeleton.NewBoneData(0, "root", nil)
	arm := skeleton.NewBoneData(1, "arm", root)
	arm.Rotation = 15
	arm.X, arm.Y = 2, 3
	arm.ScaleX, arm.ScaleY = 2, 2
	arm.ShearX, arm.ShearY = 1, 1

	body := skeleton.NewSlotData(0, "body", arm)
	body.Color = skeleton.NewColor(0.5, 0.5, 0.5, 1)
	dark := skeleton.NewColor(0.1, 0.2, 0.3, 1)
	body.DarkColor = &dark
	body.AttachmentName = "mesh"
	hat := skeleton.NewSlotData(1, "hat", root)
	hat.AttachmentName = "hat"

	skin := skeleton.NewSkin("default")
	skin.SetAttachment(0, "mesh", skeleton.NewVertexAttachment("mesh", []float64{0, 0, 1, 1}))
	skin.SetAttachment(0, "plain", &skeleton.RegionAttachment{Name: "plain"})
	skin.SetAttachment(1, "hat", &skeleton.RegionAttachment{Name: "hat"})

	return &skeleton.SkeletonData{
		Name:        "rig",
		Bones:       []*skeleton.BoneData{root, arm},
		Slots:       []*skeleton.SlotData{body, hat},
		Skins:       []*skeleton.Skin{skin},
		DefaultSkin: skin,
		IkConstraints: []*skeleton.IkConstraintData{{
			Name: "ik", Bones: []*skeleton.BoneData{arm}, Target: root,
			Mix: 0.5, Softness: 1, BendDirection: 1,
		}},
		TransformConstraints: []*skeleton.TransformConstraintData{{
			Name: "transform", Bones: []*skeleton.BoneData{arm}, Target: root,
			MixRotate: 0.5, MixX: 0.5, MixY: 0.5, MixScaleX: 0.5, MixScaleY: 0.5, MixShearY: 0.5,
		}},
		PathConstraints: []*skeleton.PathConstraintData{{
			Name: "path", Bones: []*skeleton.BoneData{arm}, Target: hat,
			Position: 0.25, Spacing: 2, MixRotate: 0.5, MixX: 0.5, MixY: 0.5,
		}},
	}
}

func newTestSkeleton(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	s, err := skeleton.New(newTestData())
	require.NoError(t, err)
	return s
}

// disturb moves every animatable value away from the setup pose.
func disturb(s *skeleton.Skeleton) {
	for _, b := range s.Bones {
		b.X, b.Y = 50, 60
		b.Rotation = 70
		b.ScaleX, b.ScaleY = -3, -3
		b.ShearX, b.ShearY = 8, 9
	}
	for _, slot := range s.Slots {
		slot.Color.Set(0, 0, 0, 0)
		if slot.DarkColor != nil {
			slot.DarkColor.Set(1, 1, 1, 1)
		}
		slot.SetAttachment(nil)
	}
	s.DrawOrder[0], s.DrawOrder[1] = s.DrawOrder[1], s.DrawOrder[0]
	for _, c := range s.IkConstraints {
		c.Mix, c.Softness, c.BendDirection, c.Compress, c.Stretch = 0, 0, -1, true, true
	}
	for _, c := range s.TransformConstraints {
		c.MixRotate, c.MixX, c.MixY, c.MixScaleX, c.MixScaleY, c.MixShearY = 0, 0, 0, 0, 0, 0
	}
	for _, c := range s.PathConstraints {
		c.Position, c.Spacing, c.MixRotate, c.MixX, c.MixY = 0, 0, 0, 0, 0
	}
}

func bonePose(b *skeleton.Bone) [7]float64 {
	return [7]float64{b.X, b.Y, b.Rotation, b.ScaleX, b.ScaleY, b.ShearX, b.ShearY}
}
