package implicits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionOrder(t *testing.T) {
	assert.True(t, Hypothesis(1).Less(Hypothesis(2)))
	assert.False(t, Hypothesis(2).Less(Hypothesis(1)))
	assert.False(t, Hypothesis(3).Less(Hypothesis(3)))
	assert.True(t, Hypothesis(99).Less(Conclusion()))
	assert.False(t, Conclusion().Less(Hypothesis(1)))
	assert.False(t, Conclusion().Less(Conclusion()))
}

func TestMerge_RigidUpgradesFlexible(t *testing.T) {
	e := Evidence{}.Merge(Hypothesis(3), false)
	assert.Equal(t, KindFlexible, e.Kind)

	e = e.Merge(Hypothesis(2), true)
	assert.Equal(t, KindRigid, e.Kind)
	assert.Equal(t, Hypothesis(2), e.RigidPos)
}

func TestMerge_FlexibleNeverDowngradesRigid(t *testing.T) {
	e := Evidence{}.Merge(Hypothesis(2), true)
	e = e.Merge(Hypothesis(5), false)
	assert.Equal(t, KindRigid, e.Kind)
	assert.Equal(t, Hypothesis(2), e.RigidPos)
}

func TestMerge_EarlierFlexibleRecordedAlongsideRigid(t *testing.T) {
	e := Evidence{}.Merge(Hypothesis(4), true)
	e = e.Merge(Hypothesis(2), false)
	assert.Equal(t, KindBoth, e.Kind)
	assert.Equal(t, Hypothesis(2), e.FlexPos)
	assert.Equal(t, Hypothesis(4), e.RigidPos)
}

func TestMerge_EarlierRigidWins(t *testing.T) {
	e := Evidence{}.Merge(Hypothesis(4), true)
	e = e.Merge(Hypothesis(2), true)
	assert.Equal(t, KindRigid, e.Kind)
	assert.Equal(t, Hypothesis(2), e.RigidPos)

	e = e.Merge(Hypothesis(3), true)
	assert.Equal(t, Hypothesis(2), e.RigidPos)
}

func TestMerge_RigidAtFlexiblePositionUpgrades(t *testing.T) {
	e := Evidence{}.Merge(Hypothesis(3), false)
	e = e.Merge(Hypothesis(3), true)
	assert.Equal(t, KindRigid, e.Kind)
	assert.Equal(t, Hypothesis(3), e.RigidPos)
}

func TestMerge_OrderIndependence(t *testing.T) {
	// The same occurrence multiset must produce the same evidence in any
	// order.
	occurrences := []struct {
		pos   Position
		rigid bool
	}{
		{Hypothesis(5), false},
		{Hypothesis(3), true},
		{Hypothesis(1), false},
		{Conclusion(), true},
	}
	forward := Evidence{}
	for _, o := range occurrences {
		forward = forward.Merge(o.pos, o.rigid)
	}
	backward := Evidence{}
	for i := len(occurrences) - 1; i >= 0; i-- {
		backward = backward.Merge(occurrences[i].pos, occurrences[i].rigid)
	}
	assert.Equal(t, forward, backward)
}

func TestInferable(t *testing.T) {
	rigid3 := Evidence{}.Merge(Hypothesis(3), true)
	assert.False(t, Inferable(false, 2, rigid3), "2 later arguments are not enough")
	assert.True(t, Inferable(false, 3, rigid3))
	assert.True(t, Inferable(false, 4, rigid3))

	flex := Evidence{}.Merge(Hypothesis(1), false)
	assert.False(t, Inferable(false, 10, flex))

	both := flex.Merge(Hypothesis(4), true)
	assert.Equal(t, KindBoth, both.Kind)
	assert.False(t, Inferable(false, 3, both))
	assert.True(t, Inferable(false, 4, both))

	rigidConcl := Evidence{}.Merge(Conclusion(), true)
	assert.False(t, Inferable(false, 10, rigidConcl))
	assert.True(t, Inferable(true, 0, rigidConcl))

	bothConcl := Evidence{}.Merge(Hypothesis(1), false).Merge(Conclusion(), true)
	assert.False(t, Inferable(true, 10, bothConcl))

	assert.True(t, Inferable(false, 0, ManualEvidence()))
	assert.False(t, Inferable(true, 10, Evidence{}))
}
