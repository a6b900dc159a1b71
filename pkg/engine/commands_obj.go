package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Map object handlers. Like NPCs, an empty name targets the bound object.
func registerObjCommands(d *Dispatcher) {
	d.register(opcode.AddObj, cmdAddObj)
	d.register(opcode.DelObj, objByName(opcode.DelObj, func(m ObjManager, name string) bool {
		return m.Del(name)
	}))
	d.register(opcode.SetObjScript, cmdSetObjScript)
	d.register(opcode.OpenBox, objByName(opcode.OpenBox, func(m ObjManager, name string) bool {
		return m.OpenBox(name)
	}))
	d.register(opcode.CloseBox, objByName(opcode.CloseBox, func(m ObjManager, name string) bool {
		return m.CloseBox(name)
	}))
	d.register(opcode.ClearBody, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Objs.ClearBody()
		return done(), nil
	})
}

func objByName(cmd opcode.Cmd, apply func(m ObjManager, name string) bool) HandlerFunc {
	return func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		name, err := d.targetName(cmd, ctx, args, 0)
		if err != nil {
			return done(), err
		}
		if !apply(d.api.Objs, name) {
			d.warnMissing(cmd, "obj", name)
		}
		return done(), nil
	}
}

func cmdAddObj(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	iniName, err := d.argString(opcode.AddObj, args, 0)
	if err != nil {
		return done(), err
	}
	x, y, err := d.argXY(opcode.AddObj, args, 1)
	if err != nil {
		return done(), err
	}
	dir, err := d.optInt(opcode.AddObj, args, 3, 0)
	if err != nil {
		return done(), err
	}
	d.api.Objs.Add(iniName, x, y, int(dir))
	return done(), nil
}

func cmdSetObjScript(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.targetName(opcode.SetObjScript, ctx, args, 0)
	if err != nil {
		return done(), err
	}
	path, err := d.argString(opcode.SetObjScript, args, 1)
	if err != nil {
		return done(), err
	}
	if !d.api.Objs.SetScript(name, path) {
		d.warnMissing(opcode.SetObjScript, "obj", name)
	}
	return done(), nil
}
