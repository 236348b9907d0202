package util

import (
	"fmt"
	"strconv"
	"strings"
)

type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Beta       bool
	Alpha      bool
	Prerelease int
}

// Parse reads MAJOR.MINOR.PATCH with an optional -alpha.N or -beta.N suffix.
func Parse(semver string) (Semver, error) {
	s := Semver{}
	core, pre, hasPre := strings.Cut(semver, "-")

	split := strings.Split(core, ".")
	if len(split) != 3 {
		return Semver{}, fmt.Errorf("invalid version %q: want MAJOR.MINOR.PATCH", semver)
	}
	nums := make([]int, 3)
	for i, part := range split {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Semver{}, fmt.Errorf("invalid version %q: bad number %q", semver, part)
		}
		nums[i] = n
	}
	s.Major, s.Minor, s.Patch = nums[0], nums[1], nums[2]

	if hasPre {
		kind, num, ok := strings.Cut(pre, ".")
		if !ok {
			return Semver{}, fmt.Errorf("invalid prerelease %q: want alpha.N or beta.N", pre)
		}
		switch kind {
		case "beta":
			s.Beta = true
		case "alpha":
			s.Alpha = true
		default:
			return Semver{}, fmt.Errorf("invalid prerelease type: %s", kind)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return Semver{}, fmt.Errorf("invalid prerelease %q: %w", pre, err)
		}
		s.Prerelease = n
	}

	return s, nil
}

func (s Semver) String() string {
	str := strconv.Itoa(s.Major) + "." + strconv.Itoa(s.Minor) + "." + strconv.Itoa(s.Patch)
	if s.Beta {
		str += "-beta." + strconv.Itoa(s.Prerelease)
	} else if s.Alpha {
		str += "-alpha." + strconv.Itoa(s.Prerelease)
	}
	return str
}

// rank orders prereleases: alpha < beta < release.
func (s Semver) rank() int {
	switch {
	case s.Alpha:
		return 0
	case s.Beta:
		return 1
	}
	return 2
}

// Compare returns -1, 0 or 1 as s is older than, equal to or newer than o.
func (s Semver) Compare(o Semver) int {
	a := []int{s.Major, s.Minor, s.Patch, s.rank(), s.Prerelease}
	b := []int{o.Major, o.Minor, o.Patch, o.rank(), o.Prerelease}
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// Satisfies checks s against a constraint: an exact version, or one
// prefixed with ~ (same minor), ^ (same major), >, >=, < or <=.
func (s Semver) Satisfies(cmp string) (bool, error) {
	op := ""
	for _, prefix := range []string{">=", "<=", "~", "^", ">", "<"} {
		if strings.HasPrefix(cmp, prefix) {
			op = prefix
			cmp = strings.TrimSpace(cmp[len(prefix):])
			break
		}
	}

	c, err := Parse(cmp)
	if err != nil {
		return false, err
	}
	d := s.Compare(c)

	switch op {
	case "~":
		return d >= 0 && s.Major == c.Major && s.Minor == c.Minor, nil
	case "^":
		return d >= 0 && s.Major == c.Major, nil
	case ">":
		return d > 0, nil
	case ">=":
		return d >= 0, nil
	case "<":
		return d < 0, nil
	case "<=":
		return d <= 0, nil
	}
	return d == 0, nil
}
