package domain

// Action identifies a declarable action.
type Action string

const (
	// ActionTrain grants 1 coin. Unchallengeable.
	ActionTrain Action = "train"
	// ActionHunt grants 2 coins. Unchallengeable.
	ActionHunt Action = "hunt"
	// ActionFinalBlow spends 7 coins to force the target to lose a card.
	// Not tied to a creature, so it cannot be challenged.
	ActionFinalBlow Action = "final_blow"
	// ActionDragonStrike claims the Dragon: target loses a card of their choice.
	ActionDragonStrike Action = "dragon_strike"
	// ActionSpecterSteal claims the Specter: steal up to 2 coins from the target.
	ActionSpecterSteal Action = "specter_steal"
	// ActionFalconSwap claims the Falcon: return a card to the deck and redraw.
	ActionFalconSwap Action = "falcon_swap"
	// ActionSlimeHarvest claims the Slime: take 3 coins from the bank.
	ActionSlimeHarvest Action = "slime_harvest"
)

const (
	FinalBlowCost    = 7
	TrainIncome      = 1
	HuntIncome       = 2
	SlimeHarvestGain = 3
	StealCap         = 2
)

// ActionSpec carries the static properties that drive declaration checks.
type ActionSpec struct {
	// Claim is the creature said to back the action; empty for card-free actions.
	Claim CreatureType
	// Challengeable actions park the game in the awaiting-response phase.
	Challengeable bool
	// NeedsTarget requires a living opponent target at declaration time.
	NeedsTarget bool
	// CoinCost is deducted from the actor when the action is declared.
	CoinCost int
}

var actionSpecs = map[Action]ActionSpec{
	ActionTrain:        {},
	ActionHunt:         {},
	ActionFinalBlow:    {NeedsTarget: true, CoinCost: FinalBlowCost},
	ActionDragonStrike: {Claim: CreatureDragon, Challengeable: true, NeedsTarget: true},
	ActionSpecterSteal: {Claim: CreatureSpecter, Challengeable: true, NeedsTarget: true},
	ActionFalconSwap:   {Claim: CreatureFalcon, Challengeable: true},
	ActionSlimeHarvest: {Claim: CreatureSlime, Challengeable: true},
}

// Spec returns the metadata for a, with ok=false for unknown actions.
func (a Action) Spec() (ActionSpec, bool) {
	spec, ok := actionSpecs[a]
	return spec, ok
}
