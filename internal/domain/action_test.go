package domain

import "testing"

func TestActionSpecs(t *testing.T) {
	tests := []struct {
		action        Action
		claim         CreatureType
		challengeable bool
		needsTarget   bool
		coinCost      int
	}{
		{ActionTrain, "", false, false, 0},
		{ActionHunt, "", false, false, 0},
		{ActionFinalBlow, "", false, true, FinalBlowCost},
		{ActionDragonStrike, CreatureDragon, true, true, 0},
		{ActionSpecterSteal, CreatureSpecter, true, true, 0},
		{ActionFalconSwap, CreatureFalcon, true, false, 0},
		{ActionSlimeHarvest, CreatureSlime, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			spec, ok := tt.action.Spec()
			if !ok {
				t.Fatalf("Spec() not found for %s", tt.action)
			}
			if spec.Claim != tt.claim {
				t.Errorf("claim = %s, want %s", spec.Claim, tt.claim)
			}
			if spec.Challengeable != tt.challengeable {
				t.Errorf("challengeable = %v, want %v", spec.Challengeable, tt.challengeable)
			}
			if spec.NeedsTarget != tt.needsTarget {
				t.Errorf("needsTarget = %v, want %v", spec.NeedsTarget, tt.needsTarget)
			}
			if spec.CoinCost != tt.coinCost {
				t.Errorf("coinCost = %d, want %d", spec.CoinCost, tt.coinCost)
			}
		})
	}
}

func TestUnknownAction(t *testing.T) {
	if _, ok := Action("fireball").Spec(); ok {
		t.Fatal("unknown action should have no spec")
	}
}

func TestCreatureAbilityText(t *testing.T) {
	for _, c := range Creatures {
		if c.Ability() == "" {
			t.Errorf("creature %s has no ability text", c)
		}
		if !c.Valid() {
			t.Errorf("creature %s should be valid", c)
		}
	}
	if CreatureType("kraken").Valid() {
		t.Fatal("kraken is not a catalog creature")
	}
}
