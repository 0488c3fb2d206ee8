// Package ecs is a minimal entity/component store. Systems query entities
// by component type; components are stored by their dynamic type.
package ecs

import (
	"reflect"
	"sort"
)

// EntityID identifies an entity. 0 is never issued.
type EntityID uint64

// EntityManager holds every entity and its components.
type EntityManager struct {
	nextID uint64
	// EntityID -> component type -> component
	components map[EntityID]map[reflect.Type]any
	// destroyed at the next RemoveMarkedEntities
	entitiesToDestroy []EntityID
}

// NewEntityManager creates an empty manager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity returns a new entity without components.
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// IsAlive reports whether the entity exists. Entities marked for
// destruction stay alive until RemoveMarkedEntities.
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// EntityCount returns the number of live entities.
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// DestroyEntity marks the entity for removal. Systems iterating entities
// can destroy them without invalidating the iteration.
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities removes the entities passed to DestroyEntity.
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// AddComponent stores the component under its dynamic type, replacing any
// component of the same type. Unknown entities are ignored.
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, ok := em.components[id]; ok {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent removes the component of the given type.
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, ok := em.components[id]; ok {
		delete(compMap, componentType)
	}
}

// GetComponent returns the component of the given type.
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.components[id][componentType]
	return comp, ok
}

// HasComponent reports whether the entity has a component of the given type.
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.components[id][componentType]
	return ok
}

// GetEntitiesWith returns the entities having every component type, in
// creation order.
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent stores a component under its static type T.
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if compMap, ok := em.components[id]; ok {
		compMap[typeOf[T]()] = component
	}
}

// GetComponent returns the entity's component of type T.
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	comp, ok := em.components[id][typeOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return comp.(T), true
}

// HasComponent reports whether the entity has a component of type T.
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent removes the entity's component of type T.
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 returns the entities having a T component.
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T]())
}

// GetEntitiesWith2 returns the entities having both component types.
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 returns the entities having all three component types.
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}
