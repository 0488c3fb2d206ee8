package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	assert.Equal(t, EntityID(1), id1, "ids start at 1")
	assert.Equal(t, EntityID(2), id2)
	assert.True(t, em.IsAlive(id1))
	assert.False(t, em.IsAlive(0))
	assert.Equal(t, 2, em.EntityCount())
}

func TestReflectionAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	posType := reflect.TypeOf(&testPositionComponent{})

	assert.False(t, em.HasComponent(id, posType))
	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})
	assert.True(t, em.HasComponent(id, posType))

	comp, ok := em.GetComponent(id, posType)
	require.True(t, ok)
	assert.Equal(t, 100.0, comp.(*testPositionComponent).X)

	em.RemoveComponent(id, posType)
	assert.False(t, em.HasComponent(id, posType))

	// Unknown entities are ignored.
	em.AddComponent(99, &testPositionComponent{})
	assert.False(t, em.HasComponent(99, posType))
}

func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 1})
	assert.True(t, HasComponent[*testPositionComponent](em, id))
	assert.False(t, HasComponent[*testVelocityComponent](em, id))
	assert.True(t, em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})), "both APIs share storage")

	pos, ok := GetComponent[*testPositionComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, 1.0, pos.X)

	vel, ok := GetComponent[*testVelocityComponent](em, id)
	assert.False(t, ok)
	assert.Nil(t, vel)

	RemoveComponent[*testPositionComponent](em, id)
	assert.False(t, HasComponent[*testPositionComponent](em, id))
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()
	var both []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
			both = append(both, id)
		}
	}

	assert.Len(t, GetEntitiesWith1[*testPositionComponent](em), 20)
	assert.Equal(t, both, GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em), "creation order")
	assert.Empty(t, GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, int](em))
	assert.Len(t, em.GetEntitiesWith(), 20)
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	em.DestroyEntity(id)
	assert.True(t, em.IsAlive(id), "removal is deferred")
	assert.True(t, HasComponent[*testPositionComponent](em, id))

	em.RemoveMarkedEntities()
	assert.False(t, em.IsAlive(id))
	assert.False(t, HasComponent[*testPositionComponent](em, id))
	assert.Empty(t, GetEntitiesWith1[*testPositionComponent](em))
	assert.Equal(t, EntityID(2), em.CreateEntity(), "ids are not reused")
}
