package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Magic handlers.
func registerMagicCommands(d *Dispatcher) {
	d.register(opcode.AddMagic, cmdAddMagic)
	d.register(opcode.DelMagic, magicByName(opcode.DelMagic, func(m MagicManager, name string) bool {
		return m.Del(name)
	}))
	d.register(opcode.SetMagicLevel, magicWithInt(opcode.SetMagicLevel, func(m MagicManager, name string, v int) bool {
		return m.SetLevel(name, v)
	}))
	d.register(opcode.AddMagicExp, magicWithInt(opcode.AddMagicExp, func(m MagicManager, name string, v int) bool {
		return m.AddExp(name, v)
	}))
	d.register(opcode.UseMagic, magicByName(opcode.UseMagic, func(m MagicManager, name string) bool {
		return m.Use(name)
	}))
}

func magicByName(cmd opcode.Cmd, apply func(m MagicManager, name string) bool) HandlerFunc {
	return func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		name, err := d.argString(cmd, args, 0)
		if err != nil {
			return done(), err
		}
		if !apply(d.api.Magic, name) {
			d.warnMissing(cmd, "magic", name)
		}
		return done(), nil
	}
}

func magicWithInt(cmd opcode.Cmd, apply func(m MagicManager, name string, v int) bool) HandlerFunc {
	return func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		name, err := d.argString(cmd, args, 0)
		if err != nil {
			return done(), err
		}
		v, err := d.argInt(cmd, args, 1)
		if err != nil {
			return done(), err
		}
		if !apply(d.api.Magic, name, int(v)) {
			d.warnMissing(cmd, "magic", name)
		}
		return done(), nil
	}
}

func cmdAddMagic(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	iniName, err := d.argString(opcode.AddMagic, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Magic.Add(iniName)
	return done(), nil
}
