package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Inventory and shop handlers. BuyGoods and SellGoods open a shop session
// and block until the player closes it.
func registerGoodsCommands(d *Dispatcher) {
	d.register(opcode.AddGoods, cmdAddGoods)
	d.register(opcode.DelGoods, cmdDelGoods)
	d.register(opcode.EquipGoods, cmdEquipGoods)
	d.register(opcode.GetGoodsNum, cmdGetGoodsNum)
	d.register(opcode.ClearGoods, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Goods.Clear()
		return done(), nil
	})
	d.register(opcode.AddRandGoods, cmdAddRandGoods)
	d.register(opcode.IfGoods, cmdIfGoods)
	d.register(opcode.BuyGoods, cmdBuyGoods)
	d.register(opcode.SellGoods, cmdSellGoods)
}

// cmdIfGoods jumps when the player carries at least count of the item.
func cmdIfGoods(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	iniName, err := d.argString(opcode.IfGoods, args, 0)
	if err != nil {
		return done(), err
	}
	count, err := d.argInt(opcode.IfGoods, args, 1)
	if err != nil {
		return done(), err
	}
	label, err := d.argString(opcode.IfGoods, args, 2)
	if err != nil {
		return done(), err
	}
	if int64(d.api.Goods.Count(iniName)) < count {
		return done(), nil
	}
	target, ok := ctx.prog.LabelTarget(label)
	if !ok {
		return done(), newArgError(string(opcode.IfGoods), "no label %q in %s", label, ctx.prog.Path)
	}
	return jumpTo(target), nil
}

func cmdAddGoods(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	iniName, err := d.argString(opcode.AddGoods, args, 0)
	if err != nil {
		return done(), err
	}
	count, err := d.optInt(opcode.AddGoods, args, 1, 1)
	if err != nil {
		return done(), err
	}
	d.api.Goods.Add(iniName, int(count))
	return done(), nil
}

func cmdDelGoods(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	iniName, err := d.argString(opcode.DelGoods, args, 0)
	if err != nil {
		return done(), err
	}
	count, err := d.optInt(opcode.DelGoods, args, 1, 1)
	if err != nil {
		return done(), err
	}
	if !d.api.Goods.Del(iniName, int(count)) {
		d.warnMissing(opcode.DelGoods, "goods", iniName)
	}
	return done(), nil
}

func cmdEquipGoods(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	iniName, err := d.argString(opcode.EquipGoods, args, 0)
	if err != nil {
		return done(), err
	}
	if !d.api.Goods.Equip(iniName) {
		d.warnMissing(opcode.EquipGoods, "goods", iniName)
	}
	return done(), nil
}

func cmdGetGoodsNum(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	iniName, err := d.argString(opcode.GetGoodsNum, args, 0)
	if err != nil {
		return done(), err
	}
	name, err := d.argVar(opcode.GetGoodsNum, args, 1)
	if err != nil {
		return done(), err
	}
	d.vars.Set(name, int64(d.api.Goods.Count(iniName)))
	return done(), nil
}

func cmdAddRandGoods(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	listName, err := d.argString(opcode.AddRandGoods, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Goods.AddRandom(listName)
	return done(), nil
}

func cmdBuyGoods(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	listName, err := d.argString(opcode.BuyGoods, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Buy.StartBuy(listName)
	buy := d.api.Buy
	return blocked(&BlockState{
		Kind: WaitPredicate,
		Done: func() bool { return !buy.SessionOpen() },
	}), nil
}

func cmdSellGoods(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.api.Buy.StartSell()
	buy := d.api.Buy
	return blocked(&BlockState{
		Kind: WaitPredicate,
		Done: func() bool { return !buy.SessionOpen() },
	}), nil
}
