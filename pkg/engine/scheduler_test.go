package engine

import (
	"testing"

	"github.com/luoxia/jianghu/pkg/opcode"
)

func TestNonBlockingScriptFinishesInOneTick(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"quest/intro.txt": `
			Assign($gold, 100)
			AddMoney(50)
			Message("welcome")
			Assign($stage, 2)
		`,
	})

	if err := w.sched.RunScript("quest/intro"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if w.sched.IsRunning() {
		t.Error("expected script to finish within a single tick")
	}
	if got := w.sched.Vars().Get("gold"); got != 100 {
		t.Errorf("gold = %d, want 100", got)
	}
	if got := w.sched.Vars().Get("stage"); got != 2 {
		t.Errorf("stage = %d, want 2", got)
	}
	if w.player.money != 50 {
		t.Errorf("money = %d, want 50", w.player.money)
	}
	if len(w.gui.messages) != 1 || w.gui.messages[0] != "welcome" {
		t.Errorf("messages = %v, want [welcome]", w.gui.messages)
	}
}

func TestSayBlocksUntilDialogClosed(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"talk.txt": `
			Assign($before, 1)
			Say("hello traveler")
			Assign($after, 1)
		`,
	})

	if err := w.sched.RunScript("talk"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if !w.sched.IsWaitingForInput() {
		t.Fatal("expected main context to gate input on dialog")
	}
	if got := w.sched.Vars().Get("before"); got != 1 {
		t.Errorf("before = %d, want 1", got)
	}
	if got := w.sched.Vars().Get("after"); got != 0 {
		t.Errorf("after = %d, want 0 while dialog open", got)
	}

	// Ticks without the close event must not advance the script.
	for i := 0; i < 5; i++ {
		w.update(16)
	}
	if got := w.sched.Vars().Get("after"); got != 0 {
		t.Errorf("after = %d, want 0 while dialog still open", got)
	}

	w.sched.OnDialogClosed()
	w.update(16)

	if got := w.sched.Vars().Get("after"); got != 1 {
		t.Errorf("after = %d, want 1 after dialog closed", got)
	}
	if w.sched.IsRunning() {
		t.Error("expected script to finish after release")
	}
}

func TestSelectWritesChosenIndex(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"choice.txt": `
			Select($answer, "yes", "no", "maybe")
			Assign($done, 1)
		`,
	})

	if err := w.sched.RunScript("choice"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if len(w.gui.selections) != 1 || len(w.gui.selections[0]) != 3 {
		t.Fatalf("selections = %v, want one entry with 3 options", w.gui.selections)
	}
	if !w.sched.IsWaitingForInput() {
		t.Fatal("expected selection to gate input")
	}

	w.sched.OnSelectionMade(2)
	w.update(16)

	if got := w.sched.Vars().Get("answer"); got != 2 {
		t.Errorf("answer = %d, want 2", got)
	}
	if got := w.sched.Vars().Get("done"); got != 1 {
		t.Errorf("done = %d, want 1", got)
	}
}

func TestGotoAndIfLoop(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"loop.txt": `
			Assign($i, 0)
			@loop:
			Add($i, 1)
			If($i, "<", 5, "loop")
		`,
	})

	if err := w.sched.RunScript("loop"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if got := w.sched.Vars().Get("i"); got != 5 {
		t.Errorf("i = %d, want 5", got)
	}
	if w.sched.IsRunning() {
		t.Error("expected loop to terminate within the tick")
	}
}

func TestRunScriptNestedCallResumesCaller(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"outer.txt": `
			Assign($x, 1)
			RunScript("inner")
			Add($x, 10)
		`,
		"inner.txt": `
			Mul($x, 2)
		`,
	})

	if err := w.sched.RunScript("outer"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	// (1 * 2) + 10: the callee ran in the middle of the caller.
	if got := w.sched.Vars().Get("x"); got != 12 {
		t.Errorf("x = %d, want 12", got)
	}
}

func TestRecursionLimitErrorsContext(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"rec.txt": `RunScript("rec")`,
	})

	if err := w.sched.RunScript("rec"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if w.sched.IsRunning() {
		t.Error("expected runaway recursion to abort the script")
	}
}

func TestUnknownCommandIsSkipped(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"future.txt": `
			SummonDragon("jinlong", 3)
			Assign($ok, 1)
		`,
	})

	if err := w.sched.RunScript("future"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if got := w.sched.Vars().Get("ok"); got != 1 {
		t.Errorf("ok = %d, want 1: unknown command must not stop the script", got)
	}
}

func TestBadArgumentsAreSkipped(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"bad.txt": `
			Assign(42, 1)
			Goto("nowhere")
			Div($x, 0)
			Assign($ok, 1)
		`,
	})

	if err := w.sched.RunScript("bad"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if got := w.sched.Vars().Get("ok"); got != 1 {
		t.Errorf("ok = %d, want 1: malformed commands must be skipped", got)
	}
}

func TestMissingEntityIsNoOp(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"ghost.txt": `
			DelNpc("nobody")
			ShowNpc("nobody")
			Assign($ok, 1)
		`,
	})

	if err := w.sched.RunScript("ghost"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if got := w.sched.Vars().Get("ok"); got != 1 {
		t.Errorf("ok = %d, want 1: missing entities must not stop the script", got)
	}
}

func TestQueuedScriptsRunInOrder(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"a.txt": `Message("a")`,
		"b.txt": `Message("b")`,
	})

	w.sched.QueueScript("a")
	w.sched.QueueScript("b")

	w.update(16)
	if len(w.gui.messages) != 1 || w.gui.messages[0] != "a" {
		t.Fatalf("after tick 1 messages = %v, want [a]", w.gui.messages)
	}

	w.update(16)
	if len(w.gui.messages) != 2 || w.gui.messages[1] != "b" {
		t.Fatalf("after tick 2 messages = %v, want [a b]", w.gui.messages)
	}
}

func TestQueuedScriptWaitsForMain(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"busy.txt":   `Say("wait for me")`,
		"queued.txt": `Message("queued")`,
	})

	if err := w.sched.RunScript("busy"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.sched.QueueScript("queued")
	w.update(16)
	w.update(16)

	if len(w.gui.messages) != 0 {
		t.Fatalf("queued script ran while main was blocked: %v", w.gui.messages)
	}

	w.sched.OnDialogClosed()
	w.update(16) // main finishes
	w.update(16) // queued starts

	if len(w.gui.messages) != 1 || w.gui.messages[0] != "queued" {
		t.Fatalf("messages = %v, want [queued]", w.gui.messages)
	}
}

func TestParallelDelayTiming(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"ambush.txt": `Message("ambush")`,
	})

	// 500ms delay at 100ms ticks: the first command runs on the fifth
	// tick, the one where the countdown reaches zero.
	if err := w.sched.RunParallelScript("ambush", 500); err != nil {
		t.Fatalf("RunParallelScript: %v", err)
	}

	for i := 0; i < 4; i++ {
		w.update(100)
		if len(w.gui.messages) != 0 {
			t.Fatalf("parallel script ran early, on tick %d", i+1)
		}
	}

	w.update(100)
	if len(w.gui.messages) != 1 {
		t.Fatalf("messages = %v, want [ambush] on the fifth tick", w.gui.messages)
	}
}

func TestScriptIssuedParallelKeepsFullDelay(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"main.txt": `RunParallelScript("bg", 500)`,
		"bg.txt":   `Message("ambush")`,
	})

	// The slot is registered mid-tick, after the countdown set was fixed
	// for this Update, so the issuing tick must not eat into the delay:
	// the first command still lands on the fifth tick after issuance.
	if err := w.sched.RunScript("main"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(100)

	for i := 0; i < 4; i++ {
		w.update(100)
		if len(w.gui.messages) != 0 {
			t.Fatalf("parallel script ran early, on tick %d after issuance", i+1)
		}
	}

	w.update(100)
	if len(w.gui.messages) != 1 {
		t.Fatalf("messages = %v, want [ambush] on the fifth tick after issuance", w.gui.messages)
	}
}

func TestParallelRunsAlongsideBlockedMain(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"main.txt": `Say("talking")`,
		"bg.txt": `
			Add($ticks, 1)
			Sleep(10)
			Add($ticks, 1)
		`,
	})

	if err := w.sched.RunScript("main"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if err := w.sched.RunParallelScript("bg", 0); err != nil {
		t.Fatalf("RunParallelScript: %v", err)
	}

	w.update(16)
	w.update(16)

	if !w.sched.IsWaitingForInput() {
		t.Fatal("main should still be blocked on dialog")
	}
	if got := w.sched.Vars().Get("ticks"); got != 2 {
		t.Errorf("ticks = %d, want 2: parallel must advance while main waits", got)
	}
}

func TestParallelErrorDoesNotAffectOthers(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"doomed.txt": `RunScript("doomed")`,
		"steady.txt": `
			Sleep(50)
			Assign($survived, 1)
		`,
	})

	if err := w.sched.RunParallelScript("doomed", 0); err != nil {
		t.Fatalf("RunParallelScript: %v", err)
	}
	if err := w.sched.RunParallelScript("steady", 0); err != nil {
		t.Fatalf("RunParallelScript: %v", err)
	}

	w.update(16)
	if len(w.sched.Parallels()) != 1 {
		t.Fatalf("parallels = %d, want 1 after errored slot reaped", len(w.sched.Parallels()))
	}

	for i := 0; i < 4; i++ {
		w.update(16)
	}
	if got := w.sched.Vars().Get("survived"); got != 1 {
		t.Errorf("survived = %d, want 1: error in one slot must not touch others", got)
	}
}

func TestStopAllScriptsReleasesInput(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"talk.txt":   `Say("stuck")`,
		"queued.txt": `Message("never")`,
	})

	if err := w.sched.RunScript("talk"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.sched.QueueScript("queued")
	w.update(16)

	if !w.sched.IsWaitingForInput() {
		t.Fatal("expected input gate before cancellation")
	}

	w.sched.StopAllScripts()

	if w.sched.IsWaitingForInput() {
		t.Error("input gate must drop atomically with cancellation")
	}
	if w.sched.IsRunning() {
		t.Error("main must be gone after StopAllScripts")
	}

	w.update(16)
	w.update(16)
	if len(w.gui.messages) != 0 {
		t.Errorf("queued script ran after StopAllScripts: %v", w.gui.messages)
	}
}

func TestSleepBlocksForDuration(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"nap.txt": `
			Sleep(100)
			Assign($awake, 1)
		`,
	})

	if err := w.sched.RunScript("nap"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}

	w.update(16)
	w.update(16)
	if got := w.sched.Vars().Get("awake"); got != 0 {
		t.Errorf("awake = %d, want 0 at 32ms", got)
	}

	for i := 0; i < 6; i++ {
		w.update(16)
	}
	if got := w.sched.Vars().Get("awake"); got != 1 {
		t.Errorf("awake = %d, want 1 after 128ms", got)
	}
}

func TestBlockingWaitsResolveFromCollaborators(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"walk.txt": `
			PlayerGoto(10, 20)
			FadeOut()
			Assign($arrived, 1)
		`,
	})
	w.player.walkPolls = 1
	w.camera.fadePolls = 1

	if err := w.sched.RunScript("walk"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}

	// Tick 1 issues the walk and blocks. Each wait takes one failing
	// poll and one succeeding one to resolve.
	for i := 0; i < 5; i++ {
		w.update(16)
	}

	if got := w.sched.Vars().Get("arrived"); got != 1 {
		t.Errorf("arrived = %d, want 1", got)
	}
	if w.player.x != 10 || w.player.y != 20 {
		t.Errorf("player at (%d,%d), want (10,20)", w.player.x, w.player.y)
	}
	if w.camera.fades != 1 {
		t.Errorf("fades = %d, want 1", w.camera.fades)
	}
}

func TestBuySessionBlocksUntilClosed(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"shop.txt": `
			BuyGoods("weaponlist")
			Assign($closed, 1)
		`,
	})
	w.buy.openPolls = 3

	if err := w.sched.RunScript("shop"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}

	w.update(16)
	if got := w.sched.Vars().Get("closed"); got != 0 {
		t.Errorf("closed = %d, want 0 while shop open", got)
	}
	if len(w.buy.started) != 1 || w.buy.started[0] != "weaponlist" {
		t.Errorf("started = %v, want [weaponlist]", w.buy.started)
	}

	for i := 0; i < 4; i++ {
		w.update(16)
	}
	if got := w.sched.Vars().Get("closed"); got != 1 {
		t.Errorf("closed = %d, want 1 after shop closed", got)
	}
}

func TestBoundEntitySubstitutesEmptyName(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"npc/guard.txt": `
			NpcSpecialAction("", 3)
			SetNpcDir("", 2)
		`,
	})
	w.npcs.known["guard"] = true

	err := w.sched.RunScriptBound("npc/guard", Bound{Kind: BoundNpc, Name: "guard"})
	if err != nil {
		t.Fatalf("RunScriptBound: %v", err)
	}
	w.update(16)

	want := []string{"action:guard", "setdir:guard"}
	if len(w.npcs.actions) != len(want) {
		t.Fatalf("actions = %v, want %v", w.npcs.actions, want)
	}
	for i := range want {
		if w.npcs.actions[i] != want[i] {
			t.Errorf("actions[%d] = %q, want %q", i, w.npcs.actions[i], want[i])
		}
	}
}

func TestRunScriptReplacesBlockedMain(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"old.txt": `Say("old dialog")`,
		"new.txt": `Assign($new, 1)`,
	})

	if err := w.sched.RunScript("old"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)
	if !w.sched.IsWaitingForInput() {
		t.Fatal("expected old script to block on dialog")
	}

	if err := w.sched.RunScript("new"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if w.sched.IsWaitingForInput() {
		t.Error("replacing the main script must drop its input gate")
	}

	w.update(16)
	if got := w.sched.Vars().Get("new"); got != 1 {
		t.Errorf("new = %d, want 1", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"s.txt": `Say("hi")`,
		"p.txt": `Sleep(10000)`,
	})

	if err := w.sched.RunScript("s"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if err := w.sched.RunParallelScript("p", 0); err != nil {
		t.Fatalf("RunParallelScript: %v", err)
	}
	w.sched.Vars().Set("gold", 999)
	w.update(16)

	w.sched.Reset()

	if w.sched.IsRunning() {
		t.Error("main survived Reset")
	}
	if len(w.sched.Parallels()) != 0 {
		t.Error("parallels survived Reset")
	}
	if w.sched.Vars().Len() != 0 {
		t.Error("variables survived Reset")
	}
	if w.sched.Loader().CachedCount() != 0 {
		t.Error("script cache survived Reset")
	}
}

func TestMainRunsBeforeParallelsInSameTick(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"main.txt": `Assign($order, 1)`,
		"bg.txt":   `Mul($order, 10)`,
	})

	if err := w.sched.RunParallelScript("bg", 0); err != nil {
		t.Fatalf("RunParallelScript: %v", err)
	}
	if err := w.sched.RunScript("main"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	// Main first: assign then multiply. The other order would give 1.
	if got := w.sched.Vars().Get("order"); got != 10 {
		t.Errorf("order = %d, want 10: main must run before parallels", got)
	}
}

func TestMaxMinCommands(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"clamp.txt": `
			Assign($hp, 40)
			Max($hp, 25)
			Max($hp, 90)
			Min($hp, 60)
		`,
	})

	if err := w.sched.RunScript("clamp"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if got := w.sched.Vars().Get("hp"); got != 60 {
		t.Errorf("hp = %d, want 60: Max(40,25)=40, Max(40,90)=90, Min(90,60)=60", got)
	}
}

func TestMoneyAndCombatToggleCommands(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"camp.txt": `
			SetMoney(250)
			DisableFight()
			DisableRun()
			EnableRun()
		`,
	})

	if err := w.sched.RunScript("camp"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if w.player.money != 250 {
		t.Errorf("money = %d, want 250", w.player.money)
	}
	if !w.player.fightOff {
		t.Error("fight still enabled after DisableFight")
	}
	if w.player.runOff {
		t.Error("run disabled, want EnableRun to win as the later command")
	}
}

func TestIfGoodsBranches(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"check.txt": `
			AddGoods("herb", 2)
			IfGoods("herb", 3, "rich")
			Assign($short, 1)
			IfGoods("herb", 2, "rich")
			Assign($fell, 1)
			@rich:
			Assign($done, 1)
		`,
	})

	if err := w.sched.RunScript("check"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	if got := w.sched.Vars().Get("short"); got != 1 {
		t.Errorf("short = %d, want 1: two herbs must not satisfy a check for three", got)
	}
	if got := w.sched.Vars().Get("fell"); got != 0 {
		t.Errorf("fell = %d, want 0: the second check must jump", got)
	}
	if got := w.sched.Vars().Get("done"); got != 1 {
		t.Errorf("done = %d, want 1", got)
	}
}

func TestNpcFollowAndClearCommands(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"part.txt": `
			AddNpc("guard", 4, 4, 0)
			FollowPlayer("guard")
			StopNpcFollow("guard")
			ClearNpc()
		`,
	})

	if err := w.sched.RunScript("part"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	want := []string{"follow:guard", "unfollow:guard"}
	if len(w.npcs.actions) != 2 || w.npcs.actions[0] != want[0] || w.npcs.actions[1] != want[1] {
		t.Errorf("actions = %v, want %v", w.npcs.actions, want)
	}
	if len(w.npcs.known) != 0 {
		t.Errorf("known NPCs = %d, want 0 after ClearNpc", len(w.npcs.known))
	}
}

func TestTitleAndMapTimeCommands(t *testing.T) {
	w := newTestWorld(t, map[string]string{
		"dusk.txt": `
			ShowTitle("Chapter One")
			ClearTitle()
			SetMapTime(5)
			GetMapTime($when)
		`,
	})

	if err := w.sched.RunScript("dusk"); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	w.update(16)

	want := []string{"Chapter One", ""}
	if len(w.gui.titles) != 2 || w.gui.titles[0] != want[0] || w.gui.titles[1] != want[1] {
		t.Errorf("titles = %v, want %v", w.gui.titles, want)
	}
	if got := w.sched.Vars().Get("when"); got != 5 {
		t.Errorf("when = %d, want 5", got)
	}
}

func TestDispatchTableComplete(t *testing.T) {
	w := newTestWorld(t, nil)
	for _, cmd := range opcode.All {
		if !w.sched.dispatch.Registered(cmd) {
			t.Errorf("no handler registered for %s", cmd)
		}
	}
}
