// Package grouping buckets classified records into title groups.
//
// Records with the same case-folded base title and the same status markers
// form one TitleGroup. Inside a group, members are partitioned into slots by
// disc index; the one-parent rule holds per slot, so disc 1 and disc 2 of a
// set are never clones of each other. A member is unique by full name and
// remembers every region whose classified set contained it.
package grouping
