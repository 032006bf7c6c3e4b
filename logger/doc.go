// This file is part of Cyclecore.
//
// Cyclecore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cyclecore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Cyclecore.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is the central log for the emulation. Entries are made up
// of a tag (usually the name of the emulated chip, eg. "CPU") and a detail
// string.
//
// Every log request is accompanied by a Permission. The CPU for example only
// allows logging when exception logging has been requested in the hardware
// preferences. Use logger.Allow when an entry should always be made.
package logger
