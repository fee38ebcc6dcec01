// Package contract scores bridge contracts under duplicate scoring and
// converts score differences to IMPs.
package contract

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bridgesim/deal"
)

// ErrInvalidContract reports an unparseable or illegal contract.
var ErrInvalidContract = errors.New("contract: invalid contract")

// Contract is a bid contract: level, strain, double state and the
// declaring side's vulnerability.
type Contract struct {
	Level      int
	Strain     deal.Strain
	Doubled    int // 0 undoubled, 1 doubled, 2 redoubled
	Vulnerable bool
}

// Parse reads a contract string such as "2D", "4HX" or "1NTXX".
func Parse(s string, vulnerable bool) (Contract, error) {
	if len(s) < 2 {
		return Contract{}, fmt.Errorf("%w: %q", ErrInvalidContract, s)
	}
	level := int(s[0] - '0')
	if level < 1 || level > 7 {
		return Contract{}, fmt.Errorf("%w: level in %q", ErrInvalidContract, s)
	}
	doubled := 0
	body := s[1:]
	for strings.HasSuffix(body, "X") {
		body = strings.TrimSuffix(body, "X")
		doubled++
	}
	if doubled > 2 {
		return Contract{}, fmt.Errorf("%w: %q redoubled more than once", ErrInvalidContract, s)
	}
	strain, err := deal.ParseStrain(body)
	if err != nil {
		return Contract{}, fmt.Errorf("%w: strain in %q", ErrInvalidContract, s)
	}
	return Contract{Level: level, Strain: strain, Doubled: doubled, Vulnerable: vulnerable}, nil
}

func (c Contract) String() string {
	return fmt.Sprintf("%d%s%s", c.Level, c.Strain, strings.Repeat("X", c.Doubled))
}

// Target is the number of tricks declarer needs: level plus six.
func (c Contract) Target() int {
	return c.Level + 6
}

// Score returns the declaring side's score for taking the given number of
// tricks: negative when the contract fails, otherwise the trick score
// plus all applicable bonuses and overtricks.
func (c Contract) Score(tricks int) int {
	if tricks < c.Target() {
		return c.undertricks(tricks)
	}
	return c.madeScore() + c.overtricks(tricks)
}

// undertricks scores a failed contract. Undoubled undertricks cost 50
// non-vulnerable and 100 vulnerable. Doubled they cost 100 then 300s
// non-vulnerable (300 per trick beyond the second, plus 100), and 200
// then 300s vulnerable. Redoubled doubles the doubled penalty.
func (c Contract) undertricks(tricks int) int {
	under := tricks - c.Target() // negative
	if c.Doubled == 0 {
		if c.Vulnerable {
			return under * 100
		}
		return under * 50
	}
	if c.Vulnerable {
		return (under*300 + 100) * c.Doubled
	}
	switch under {
	case -1:
		return -100 * c.Doubled
	case -2:
		return -300 * c.Doubled
	}
	return ((under+1)*300 + 100) * c.Doubled
}

// overtricks scores tricks beyond the target, excluding the made-contract
// score itself. Undoubled they are worth 20 in the minors, 30 otherwise;
// doubled 100 non-vulnerable and 200 vulnerable, redoubled twice that.
func (c Contract) overtricks(tricks int) int {
	over := tricks - c.Target()
	if c.Doubled != 0 {
		if c.Vulnerable {
			return over * 200 * c.Doubled
		}
		return over * 100 * c.Doubled
	}
	if c.Strain.Minor() {
		return over * 20
	}
	return over * 30
}

// madeScore scores making the contract exactly: the trick score (20 a
// trick in the minors, 30 in the majors, 40 for the first no-trump
// trick), doubled or redoubled as bid, plus the part-score or game bonus,
// any slam bonus, and the doubling insult.
func (c Contract) madeScore() int {
	var trickScore int
	switch {
	case c.Strain.Minor():
		trickScore = 20 * c.Level
	case c.Strain == deal.NoTrump:
		trickScore = 30*c.Level + 10
	default:
		trickScore = 30 * c.Level
	}
	trickScore <<= c.Doubled

	bonus := 50
	if trickScore >= 100 {
		bonus = 300
		if c.Vulnerable {
			bonus = 500
		}
	}

	slam := 0
	switch c.Level {
	case 6:
		slam = 500
		if c.Vulnerable {
			slam = 750
		}
	case 7:
		slam = 1000
		if c.Vulnerable {
			slam = 1500
		}
	}

	return trickScore + bonus + slam + 50*c.Doubled
}

// impScale holds the lower bound of each IMP band, offset so that a
// straight bisection of the absolute score difference yields the IMPs.
var impScale = []int{
	15, 45, 85, 125, 165, 215, 265, 315, 365, 425, 495, 595, 745, 895,
	1095, 1295, 1495, 1745, 1995, 2245, 2495, 2995, 3495, 3995,
}

// IMPs converts a signed score difference to international match points.
func IMPs(diff int) int {
	sign := 1
	if diff < 0 {
		sign, diff = -1, -diff
	}
	return sign * sort.SearchInts(impScale, diff)
}
