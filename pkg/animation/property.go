package animation

import (
	"strconv"
	"strings"
)

// Property identifies what a timeline animates. Two timelines conflict when
// they share a property id.
type Property int

const (
	PropertyRotate Property = iota
	PropertyX
	PropertyY
	PropertyScaleX
	PropertyScaleY
	PropertyShearX
	PropertyShearY
	PropertyRGB
	PropertyAlpha
	PropertyRGB2
	PropertyAttachment
	PropertyDeform
	PropertyEvent
	PropertyDrawOrder
	PropertyIkConstraint
	PropertyTransformConstraint
	PropertyPathConstraintPosition
	PropertyPathConstraintSpacing
	PropertyPathConstraintMix
)

// propertyID builds "property|index|..." ids.
func propertyID(p Property, indices ...int) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(p)))
	for _, i := range indices {
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}
