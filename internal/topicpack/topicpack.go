// Package topicpack holds the fixed STEM subject set and the curriculum
// topic list for each subject.
package topicpack

import (
	"errors"
	"fmt"
	"strings"
)

// Subject is one of the four supported STEM subjects.
type Subject string

const (
	Physics         Subject = "Physics"
	Math            Subject = "Math"
	Chemistry       Subject = "Chemistry"
	ComputerScience Subject = "Computer Science"
)

// ErrUnknownSubject is returned when a subject name is not in the fixed set.
var ErrUnknownSubject = errors.New("unknown subject")

// AllSubjects returns the supported subjects in display order.
func AllSubjects() []Subject {
	return []Subject{Physics, Math, Chemistry, ComputerScience}
}

// Valid reports whether s is one of the supported subjects.
func (s Subject) Valid() bool {
	_, ok := topics[s]
	return ok
}

// ParseSubject matches name against the supported subjects, ignoring case
// and surrounding whitespace. "cs" is accepted for Computer Science.
func ParseSubject(name string) (Subject, error) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, "cs") {
		return ComputerScience, nil
	}
	for _, s := range AllSubjects() {
		if strings.EqualFold(n, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubject, name)
}

// Topics returns a copy of the topic pack for s, or nil for an unknown subject.
func Topics(s Subject) []string {
	pack, ok := topics[s]
	if !ok {
		return nil
	}
	out := make([]string, len(pack))
	copy(out, pack)
	return out
}

var topics = map[Subject][]string{
	Physics: {
		"Units & Measurements",
		"Mechanics: Kinematics & Dynamics",
		"Mechanics: Work, Energy & Power",
		"Rotational Dynamics & Torque",
		"Mechanics: Circular Motion & Gravitation",
		"Elasticity & Fluid Mechanics",
		"Oscillations (SHM) & Waves",
		"Sound & Doppler Effect",
		"Heat: Thermal Expansion & Calorimetry",
		"Heat: Thermodynamics & Kinetic Theory",
		"Electrostatics",
		"Current Electricity",
		"Magnetism & Electromagnetic Induction",
		"Electromagnetic Waves",
		"Optics: Reflection, Refraction & Lenses",
		"Wave Optics",
		"Modern Physics: Nuclear, Quantum & Solids",
		"Semiconductors & Electronics",
		"Communication Systems",
	},
	Math: {
		"Sets, Logic & Real Numbers",
		"Relations & Functions",
		"Matrices & Determinants",
		"Sequence & Series",
		"Complex Numbers",
		"Trigonometry: Compound & Multiple Angles",
		"Trigonometry: Inverse & General Solutions",
		"Binomial Theorem & Mathematical Induction",
		"Calculus: Limits & Continuity",
		"Calculus: Differentiation & Applications",
		"Calculus: Integration & Applications",
		"Differential Equations (Basics)",
		"Coordinate Geometry: Lines & Circles",
		"Coordinate Geometry: Conic Sections",
		"Vectors & 3D Geometry",
		"Permutations, Combinations & Probability",
		"Statistics & Data Interpretation",
		"Linear Programming",
	},
	Chemistry: {
		"Atomic Structure & Periodicity",
		"Chemical Bonding",
		"States of Matter",
		"Stoichiometry & Gas Laws",
		"Thermodynamics & Thermochemistry",
		"Chemical Equilibrium",
		"Solutions & Colligative Properties",
		"Acids, Bases & Salts",
		"Electrochemistry",
		"Chemical Kinetics",
		"Surface Chemistry",
		"Metals & Non-metals",
		"Coordination Compounds",
		"Organic: Hydrocarbons",
		"Organic: Haloalkanes, Alcohols & Ethers",
		"Organic: Aldehydes, Ketones & Carboxylic Acids",
		"Polymers & Biomolecules",
		"Environmental Chemistry",
	},
	ComputerScience: {
		"Programming Fundamentals",
		"Data Types & Variables",
		"Control Flow & Loops",
		"Functions & Recursion",
		"Data Structures: Arrays, Stacks & Queues",
		"Data Structures: Linked Lists, Trees & Heaps",
		"Data Structures: Graphs & Hashing",
		"Searching & Sorting Algorithms",
		"Algorithm Analysis (Big-O)",
		"Discrete Math & Boolean Algebra",
		"Object-Oriented Programming",
		"Databases & SQL",
		"Computer Organization Basics",
		"Computer Networks Basics",
		"Operating Systems Basics",
		"Web Basics (HTML/CSS/JS)",
		"Software Engineering & SDLC",
		"Cybersecurity Fundamentals",
	},
}
