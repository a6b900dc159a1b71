package game

import "strings"

// Obj is an interactive map object: a chest, a corpse, a door.
type Obj struct {
	Name   string
	X, Y   int
	Dir    int
	Script string
	Open   bool
	IsBody bool
}

// ObjManager tracks map objects by name, case-insensitively.
type ObjManager struct {
	objs map[string]*Obj
}

// NewObjManager creates an empty manager.
func NewObjManager() *ObjManager {
	return &ObjManager{objs: make(map[string]*Obj)}
}

// Get returns the named object, or nil.
func (m *ObjManager) Get(name string) *Obj { return m.objs[strings.ToLower(name)] }

func (m *ObjManager) Add(iniName string, x, y, dir int) {
	m.objs[strings.ToLower(iniName)] = &Obj{
		Name: iniName, X: x, Y: y, Dir: dir,
		IsBody: strings.Contains(strings.ToLower(iniName), "body"),
	}
}

func (m *ObjManager) Del(name string) bool {
	key := strings.ToLower(name)
	if _, ok := m.objs[key]; !ok {
		return false
	}
	delete(m.objs, key)
	return true
}

func (m *ObjManager) SetScript(name, path string) bool {
	o := m.Get(name)
	if o == nil {
		return false
	}
	o.Script = path
	return true
}

func (m *ObjManager) OpenBox(name string) bool {
	o := m.Get(name)
	if o == nil {
		return false
	}
	o.Open = true
	return true
}

func (m *ObjManager) CloseBox(name string) bool {
	o := m.Get(name)
	if o == nil {
		return false
	}
	o.Open = false
	return true
}

// ClearBody removes corpse objects left by combat.
func (m *ObjManager) ClearBody() {
	for key, o := range m.objs {
		if o.IsBody {
			delete(m.objs, key)
		}
	}
}
