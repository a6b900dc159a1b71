package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Audio handlers. Playback failures are logged and the script continues;
// a missing music file never stalls a quest.
func registerAudioCommands(d *Dispatcher) {
	d.register(opcode.PlayMusic, cmdPlayMusic)
	d.register(opcode.StopMusic, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Sound.StopMusic()
		return done(), nil
	})
	d.register(opcode.PlaySound, cmdPlaySound)
}

func cmdPlayMusic(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.argString(opcode.PlayMusic, args, 0)
	if err != nil {
		return done(), err
	}
	if err := d.api.Sound.PlayMusic(name); err != nil {
		d.log.Warn("music playback failed", "file", name, "error", err)
	}
	return done(), nil
}

func cmdPlaySound(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.argString(opcode.PlaySound, args, 0)
	if err != nil {
		return done(), err
	}
	if err := d.api.Sound.PlaySound(name); err != nil {
		d.log.Warn("sound playback failed", "file", name, "error", err)
	}
	return done(), nil
}
