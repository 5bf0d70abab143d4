package event

var typeToName = make(map[EventType]string)

func registerType(name string, et EventType) {
	typeToName[et] = name
}

func init() {
	registerType("Tick", EventTick)
	registerType("WordCompleted", EventWordCompleted)
	registerType("GlobalTypo", EventGlobalTypo)
	registerType("TargetReassigned", EventTargetReassigned)
	registerType("ScriptMismatch", EventScriptMismatch)
	registerType("PlayerHit", EventPlayerHit)
	registerType("PlayerDefeated", EventPlayerDefeated)
	registerType("CastStarted", EventCastStarted)
	registerType("CastFired", EventCastFired)
	registerType("CastFinished", EventCastFinished)
	registerType("AttackDropped", EventAttackDropped)
	registerType("EnemyDied", EventEnemyDied)
}

func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "Unknown"
}
