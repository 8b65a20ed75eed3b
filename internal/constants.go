package internal

// Epsilon is the minimum distance between two knot values before they are
// considered the same knot.
const Epsilon = 1e-10

// Tolerance is the minimum distance between two points in model space before
// they are considered coincident.
const Tolerance = 1e-6
